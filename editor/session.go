package editor

import (
	"sync"

	"github.com/rpupo63/site-sections-backend/section"
)

// Session binds an editor to the field holding its section's content.
type Session struct {
	editor Editor
	field  *Field

	mu          sync.Mutex
	state       State
	version     int
	err         error
	unsubscribe func()
}

// NewSession upgrades the stored content to the current grammar, parses it and
// starts following raw edits of the field. An upgraded document is written
// back to the field straight away.
func NewSession(ed Editor, field *Field, version int) (*Session, error) {
	stored := field.Value()
	up, err := section.Upgrade(ed.Kind(), stored, version)
	if err != nil {
		return nil, err
	}
	payload, err := section.Decode(ed.Kind(), up.Content)
	if err != nil {
		return nil, err
	}

	s := &Session{
		editor:  ed,
		field:   field,
		state:   NewState(payload),
		version: up.Version,
	}
	if up.Content != stored {
		field.Write(up.Content)
	}
	s.unsubscribe = field.Subscribe(s.onChange)
	return s, nil
}

// Dispatch reduces a, serializes the new state into the field and notifies
// the field's listeners. On error the state and the field are left alone.
func (s *Session) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	next, err := s.editor.Reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		return s.State(), err
	}
	content, err := section.Encode(next.Payload)
	if err != nil {
		s.mu.Unlock()
		return s.State(), err
	}
	s.state = next
	s.version = section.CurrentVersion
	s.err = nil
	s.mu.Unlock()

	s.field.Write(content)
	return next, nil
}

func (s *Session) onChange(c Change) {
	if c.Programmatic {
		return
	}

	payload, err := section.Decode(s.editor.Kind(), c.Value)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return
	}
	s.state = NewState(payload)
	s.version = section.CurrentVersion
	s.err = nil
}

// SetEditingIndex opens record i in the form, or add mode for NotEditing.
func (s *Session) SetEditingIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EditingIndex = i
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Content() string {
	return s.field.Value()
}

// Version is the content version the field's content now conforms to.
func (s *Session) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Err is the parse error of the last raw edit, if it could not be read.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ImageTarget routes picked images to the record being edited.
func (s *Session) ImageTarget() ImageTarget {
	return func(url string) error {
		_, err := s.Dispatch(SetImage{URL: url})
		return err
	}
}

func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
