package capability

import (
	"fmt"
	"slices"
	"sync"
)

// Table maps capability names to the implementation currently installed for
// each name. It is safe for concurrent use.
//
// Each name has a registered base value and a stack of live overrides. The
// newest live override wins; once every override is restored the base is
// visible again, whatever order the restores ran in.
type Table[T any] struct {
	mu        sync.RWMutex
	entries   map[string]T
	overrides map[string][]*override[T]
}

type override[T any] struct {
	value T
}

// NewTable creates an empty Table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		entries:   make(map[string]T),
		overrides: make(map[string][]*override[T]),
	}
}

// Register installs v as the base value for name. Live overrides still
// shadow it until they are restored.
func (t *Table[T]) Register(name string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = v
}

// Lookup returns the implementation installed under name.
func (t *Table[T]) Lookup(name string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if stack := t.overrides[name]; len(stack) > 0 {
		return stack[len(stack)-1].value, nil
	}

	v, ok := t.entries[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return v, nil
}

// Override installs v under name and returns a function that withdraws it.
// Calling restore more than once has no further effect.
func (t *Table[T]) Override(name string, v T) (restore func()) {
	o := &override[T]{value: v}

	t.mu.Lock()
	t.overrides[name] = append(t.overrides[name], o)
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			stack := slices.DeleteFunc(t.overrides[name], func(e *override[T]) bool { return e == o })
			if len(stack) == 0 {
				delete(t.overrides, name)
				return
			}
			t.overrides[name] = stack
		})
	}
}
