// Package registry holds step definitions and matches live step text
// against them at execution time.
package registry

import (
	"fmt"
	"runtime"
	"sync"

	"stepcov/internal/domain"
	"stepcov/internal/harness"
	"stepcov/internal/pattern"
)

// Handler executes one matched step against the mounting harness wrapper.
type Handler func(w harness.Wrapper, args Args) error

// Args are the typed values captured at placeholder positions: int for
// {int}, float64 for {float}, unquoted string for {string}.
type Args []any

// Int returns the i-th argument as an int.
func (a Args) Int(i int) int {
	n, _ := a[i].(int)
	return n
}

// Float returns the i-th argument as a float64.
func (a Args) Float(i int) float64 {
	f, _ := a[i].(float64)
	return f
}

// String returns the i-th argument as a string.
func (a Args) String(i int) string {
	s, _ := a[i].(string)
	return s
}

// Entry is one registered step definition with its compiled matcher.
type Entry struct {
	Keyword     string
	Pattern     string
	Handler     Handler
	File        string
	Line        int
	Parameters  []string
	Implemented bool

	matcher *pattern.Matcher
}

// Registry is an append-only, insertion-ordered table of step definitions
// keyed by (keyword, pattern). Registration happens once at suite load
// time; matching reads happen afterwards. Tests may reset a registry with
// Clear, which is always an explicit operation.
type Registry struct {
	mu      sync.Mutex
	entries []*Entry
	keys    map[string]bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{keys: make(map[string]bool)}
}

// Register adds a step definition. A nil handler declares the step without
// implementing it; such entries match but dispatch to a PendingStepError.
// Registering the same (keyword, pattern) twice returns a DuplicateStepError.
func (r *Registry) Register(keyword, pat string, h Handler) error {
	return r.register(keyword, pat, h, 2)
}

// MustRegister is Register but panics on duplicates. Intended for suite
// load time, where a duplicate cannot be recovered from.
func (r *Registry) MustRegister(keyword, pat string, h Handler) {
	if err := r.register(keyword, pat, h, 2); err != nil {
		panic(err)
	}
}

func (r *Registry) register(keyword, pat string, h Handler, skip int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyword + " " + pat
	if r.keys[key] {
		return &DuplicateStepError{Keyword: keyword, Pattern: pat}
	}

	e := &Entry{
		Keyword:     keyword,
		Pattern:     pat,
		Handler:     h,
		Parameters:  pattern.ParameterNames(pat),
		Implemented: h != nil,
		matcher:     pattern.Compile(pat),
	}
	if _, file, line, ok := runtime.Caller(skip); ok {
		e.File = file
		e.Line = line
	}

	r.keys[key] = true
	r.entries = append(r.entries, e)
	return nil
}

// Match scans entries in registration order and returns the first whose
// compiled pattern accepts the literal text. First match wins: more
// specific patterns should be registered before more general ones. Usages
// with an And or But keyword match definitions under any keyword; otherwise
// keywords must match exactly.
func (r *Registry) Match(keyword, text string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wildcard := keyword == domain.KeywordAnd || keyword == domain.KeywordBut
	for _, e := range r.entries {
		if !wildcard && e.Keyword != keyword {
			continue
		}
		if e.matcher.Match(text) {
			return e, nil
		}
	}
	return nil, &NoMatchingStepError{Keyword: keyword, Text: text}
}

// Dispatch matches the literal text, parses the captured placeholder
// substrings into typed arguments and invokes the handler against the
// harness wrapper.
func (r *Registry) Dispatch(keyword, text string, w harness.Wrapper) error {
	e, err := r.Match(keyword, text)
	if err != nil {
		return err
	}
	if e.Handler == nil {
		return Pending(text)
	}
	args, ok := e.matcher.Args(text)
	if !ok {
		return fmt.Errorf("parse step arguments for %q: pattern %q", text, e.Pattern)
	}
	return e.Handler(w, args)
}

// Definitions enumerates the registered entries as definition records, in
// registration order.
func (r *Registry) Definitions() []domain.StepDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()

	defs := make([]domain.StepDefinition, 0, len(r.entries))
	for _, e := range r.entries {
		defs = append(defs, domain.StepDefinition{
			Keyword:     e.Keyword,
			Pattern:     e.Pattern,
			File:        e.File,
			Line:        e.Line,
			Parameters:  e.Parameters,
			Implemented: e.Implemented,
		})
	}
	return defs
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Clear removes every entry. Test isolation only; never called implicitly.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.keys = make(map[string]bool)
}

// defaultRegistry is the process-wide convenience instance.
var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Given registers a Given step on the default registry, panicking on
// duplicates. When and Then behave identically for their keywords.
func Given(pat string, h Handler) {
	if err := defaultRegistry.register(domain.KeywordGiven, pat, h, 2); err != nil {
		panic(err)
	}
}

// When registers a When step on the default registry.
func When(pat string, h Handler) {
	if err := defaultRegistry.register(domain.KeywordWhen, pat, h, 2); err != nil {
		panic(err)
	}
}

// Then registers a Then step on the default registry.
func Then(pat string, h Handler) {
	if err := defaultRegistry.register(domain.KeywordThen, pat, h, 2); err != nil {
		panic(err)
	}
}
