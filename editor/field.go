package editor

import "sync"

// Change is delivered to every listener after the field is written.
type Change struct {
	Value string
	// Programmatic is set when an editor serialized its own state into the
	// field, so that editor knows not to parse it back.
	Programmatic bool
}

type Listener func(Change)

// Field is the serialized content of one section, shared by the editor that
// owns it and whatever previews it.
type Field struct {
	mu        sync.Mutex
	value     string
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

func NewField(value string) *Field {
	return &Field{value: value}
}

func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Subscribe registers l and returns a function that removes it.
func (f *Field) Subscribe(l Listener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	f.listeners = append(f.listeners, subscription{id: id, fn: l})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, s := range f.listeners {
			if s.id == id {
				f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
				return
			}
		}
	}
}

// Write stores content serialized by an editor.
func (f *Field) Write(value string) {
	f.set(value, true)
}

// Input stores content typed directly into the field.
func (f *Field) Input(value string) {
	f.set(value, false)
}

func (f *Field) set(value string, programmatic bool) {
	f.mu.Lock()
	f.value = value
	listeners := make([]Listener, len(f.listeners))
	for i, s := range f.listeners {
		listeners[i] = s.fn
	}
	f.mu.Unlock()

	for _, l := range listeners {
		l(Change{Value: value, Programmatic: programmatic})
	}
}
