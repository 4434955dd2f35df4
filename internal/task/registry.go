package task

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName     = errors.New("task name is empty")
	ErrDuplicateName = errors.New("task name already registered")
	ErrNilTask       = errors.New("task is nil")
)

// Handle identifies a task owned by a Registry. Handles are only meaningful
// for the registry that issued them.
type Handle int

type entry struct {
	name string
	task *Dummy
}

// Registry owns a set of named dummy tasks and hands out typed handles, so a
// scheduler callback can carry a Handle instead of an untyped pointer.
type Registry struct {
	entries []entry
	byName  map[string]Handle
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Handle),
	}
}

// Add registers t under name and returns its handle
func (r *Registry) Add(name string, t *Dummy) (Handle, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if t == nil {
		return 0, fmt.Errorf("task %q: %w", name, ErrNilTask)
	}
	if _, exists := r.byName[name]; exists {
		return 0, fmt.Errorf("task %q: %w", name, ErrDuplicateName)
	}

	h := Handle(len(r.entries))
	r.entries = append(r.entries, entry{name: name, task: t})
	r.byName[name] = h
	return h, nil
}

// Lookup returns the handle registered under name
func (r *Registry) Lookup(name string) (Handle, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// Get returns the task behind h
func (r *Registry) Get(h Handle) (*Dummy, bool) {
	if !r.valid(h) {
		return nil, false
	}
	return r.entries[h].task, true
}

// Name returns the name h was registered under, or "" for an unknown handle
func (r *Registry) Name(h Handle) string {
	if !r.valid(h) {
		return ""
	}
	return r.entries[h].name
}

// Handler returns a callback that runs the task behind h. It panics if h was
// not issued by r.
func (r *Registry) Handler(h Handle) Handler {
	t := r.mustGet(h)
	return func(any) bool {
		return t.Run()
	}
}

// Dispatch is a context-argument callback: arg must be a Handle issued by r.
func (r *Registry) Dispatch(arg any) bool {
	h, ok := arg.(Handle)
	if !ok {
		panic(fmt.Sprintf("task: Dispatch called with %T, want task.Handle", arg))
	}
	return r.mustGet(h).Run()
}

// Each calls fn for every task in registration order
func (r *Registry) Each(fn func(name string, t *Dummy)) {
	for _, e := range r.entries {
		fn(e.name, e.task)
	}
}

// ResetAll resets every registered task
func (r *Registry) ResetAll() {
	for _, e := range r.entries {
		e.task.Reset()
	}
}

// Len returns the number of registered tasks
func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) valid(h Handle) bool {
	return h >= 0 && int(h) < len(r.entries)
}

func (r *Registry) mustGet(h Handle) *Dummy {
	if !r.valid(h) {
		panic(fmt.Sprintf("task: unknown handle %d", h))
	}
	return r.entries[h].task
}
