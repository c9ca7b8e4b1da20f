package registry

import (
	"errors"
	"testing"

	"stepcov/internal/domain"
	"stepcov/internal/harness"
)

// fakeWrapper satisfies harness.Wrapper for dispatch tests.
type fakeWrapper struct{}

func (fakeWrapper) Find(string) (harness.Element, error) { return nil, nil }
func (fakeWrapper) SetValue(string, any) error           { return nil }
func (fakeWrapper) Trigger(string, string) error         { return nil }
func (fakeWrapper) Emitted(string) [][]any               { return nil }
func (fakeWrapper) Prop(string) any                      { return nil }
func (fakeWrapper) State(string) any                     { return nil }
func (fakeWrapper) Unmount()                             {}

func noop(harness.Wrapper, Args) error { return nil }

func TestRegistry_Register(t *testing.T) {
	t.Run("duplicate keyword and pattern", func(t *testing.T) {
		r := New()
		if err := r.Register(domain.KeywordGiven, "I have {int} apples", noop); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := r.Register(domain.KeywordGiven, "I have {int} apples", noop)
		var dup *DuplicateStepError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateStepError, got %v", err)
		}
		if dup.Pattern != "I have {int} apples" {
			t.Errorf("error carries wrong pattern: %q", dup.Pattern)
		}
	})

	t.Run("same pattern under different keywords", func(t *testing.T) {
		r := New()
		if err := r.Register(domain.KeywordGiven, "the cart is empty", noop); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := r.Register(domain.KeywordThen, "the cart is empty", noop); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Len() != 2 {
			t.Errorf("expected 2 entries, got %d", r.Len())
		}
	})

	t.Run("nil handler registers unimplemented", func(t *testing.T) {
		r := New()
		if err := r.Register(domain.KeywordWhen, "I submit the form", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defs := r.Definitions()
		if len(defs) != 1 || defs[0].Implemented {
			t.Errorf("expected one unimplemented definition, got %+v", defs)
		}
	})

	t.Run("caller location recorded", func(t *testing.T) {
		r := New()
		if err := r.Register(domain.KeywordGiven, "located step", noop); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		def := r.Definitions()[0]
		if def.File == "" || def.Line == 0 {
			t.Errorf("expected caller file and line, got %q:%d", def.File, def.Line)
		}
	})
}

func TestRegistry_Match(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		r := New()
		_, err := r.Match(domain.KeywordGiven, "I have 2 apples")
		var nm *NoMatchingStepError
		if !errors.As(err, &nm) {
			t.Fatalf("expected NoMatchingStepError, got %v", err)
		}
	})

	t.Run("keyword must match exactly", func(t *testing.T) {
		r := New()
		r.MustRegister(domain.KeywordGiven, "the user is logged in", noop)
		if _, err := r.Match(domain.KeywordThen, "the user is logged in"); err == nil {
			t.Error("expected no match for Then usage of a Given definition")
		}
	})

	t.Run("and matches any keyword", func(t *testing.T) {
		r := New()
		r.MustRegister(domain.KeywordThen, "the total is {int}", noop)
		e, err := r.Match(domain.KeywordAnd, "the total is 5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Keyword != domain.KeywordThen {
			t.Errorf("expected Then entry, got %s", e.Keyword)
		}
	})

	t.Run("but matches any keyword", func(t *testing.T) {
		r := New()
		r.MustRegister(domain.KeywordGiven, "the cart is empty", noop)
		if _, err := r.Match(domain.KeywordBut, "the cart is empty"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("first match wins", func(t *testing.T) {
		r := New()
		r.MustRegister(domain.KeywordGiven, "I have 2 apples", noop)
		r.MustRegister(domain.KeywordGiven, "I have {int} apples", noop)

		e, err := r.Match(domain.KeywordGiven, "I have 2 apples")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Pattern != "I have 2 apples" {
			t.Errorf("expected the earlier literal entry, got %q", e.Pattern)
		}

		e, err = r.Match(domain.KeywordGiven, "I have 7 apples")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Pattern != "I have {int} apples" {
			t.Errorf("expected the parameterized entry, got %q", e.Pattern)
		}
	})
}

func TestRegistry_Dispatch(t *testing.T) {
	t.Run("typed arguments", func(t *testing.T) {
		r := New()
		var got Args
		r.MustRegister(domain.KeywordWhen, `I pay {float} for {int} {string}`, func(w harness.Wrapper, args Args) error {
			got = args
			return nil
		})

		if err := r.Dispatch(domain.KeywordWhen, `I pay 9.99 for 2 "widgets"`, fakeWrapper{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Float(0) != 9.99 {
			t.Errorf("expected float arg 9.99, got %v", got.Float(0))
		}
		if got.Int(1) != 2 {
			t.Errorf("expected int arg 2, got %v", got.Int(1))
		}
		if got.String(2) != "widgets" {
			t.Errorf("expected unquoted string arg, got %q", got.String(2))
		}
	})

	t.Run("nil handler is pending", func(t *testing.T) {
		r := New()
		r.MustRegister(domain.KeywordWhen, "I submit the form", nil)
		err := r.Dispatch(domain.KeywordWhen, "I submit the form", fakeWrapper{})
		var pending *PendingStepError
		if !errors.As(err, &pending) {
			t.Fatalf("expected PendingStepError, got %v", err)
		}
	})

	t.Run("handler error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		r := New()
		r.MustRegister(domain.KeywordThen, "it fails", func(harness.Wrapper, Args) error { return boom })
		if err := r.Dispatch(domain.KeywordThen, "it fails", fakeWrapper{}); !errors.Is(err, boom) {
			t.Errorf("expected handler error, got %v", err)
		}
	})

	t.Run("no match", func(t *testing.T) {
		r := New()
		err := r.Dispatch(domain.KeywordGiven, "nothing registered", fakeWrapper{})
		var nm *NoMatchingStepError
		if !errors.As(err, &nm) {
			t.Fatalf("expected NoMatchingStepError, got %v", err)
		}
	})
}

func TestRegistry_Clear(t *testing.T) {
	r := New()
	r.MustRegister(domain.KeywordGiven, "something", noop)
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after Clear, got %d entries", r.Len())
	}
	// key table is reset too, so re-registering must succeed
	if err := r.Register(domain.KeywordGiven, "something", noop); err != nil {
		t.Errorf("unexpected error after Clear: %v", err)
	}
}

func TestRegistry_Definitions(t *testing.T) {
	r := New()
	r.MustRegister(domain.KeywordGiven, "I have {int} apples", noop)
	r.MustRegister(domain.KeywordWhen, `I add {string}`, noop)

	defs := r.Definitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Pattern != "I have {int} apples" || defs[1].Pattern != "I add {string}" {
		t.Errorf("definitions out of registration order: %+v", defs)
	}
	if len(defs[0].Parameters) != 1 || defs[0].Parameters[0] != "int" {
		t.Errorf("expected parameter names [int], got %v", defs[0].Parameters)
	}
}
