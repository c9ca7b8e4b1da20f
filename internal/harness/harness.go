// Package harness declares the interface of the UI-component mounting
// harness that step handlers drive. The tool never constructs a harness;
// it only calls into one supplied by the embedding test suite.
package harness

// MountOptions configures a component mount.
type MountOptions struct {
	Props map[string]any
	Slots map[string]string
}

// Harness mounts a component and returns a queryable wrapper around it.
type Harness interface {
	Mount(component any, opts MountOptions) (Wrapper, error)
}

// Wrapper is the queryable handle around a mounted component.
type Wrapper interface {
	// Find looks up a rendered element by selector.
	Find(selector string) (Element, error)
	// SetValue sets the value of a form element identified by selector.
	SetValue(selector string, value any) error
	// Trigger fires a DOM-level event on the element identified by selector.
	Trigger(selector, event string) error
	// Emitted returns the payloads of every emission of the named event.
	Emitted(event string) [][]any
	// Prop reads a prop passed to the component.
	Prop(name string) any
	// State reads a named piece of component state.
	State(name string) any
	// Unmount tears the component down.
	Unmount()
}

// Element is a single rendered element located by a selector.
type Element interface {
	Exists() bool
	Text() string
	Attribute(name string) (string, bool)
}
