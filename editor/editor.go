// Package editor holds the admin-side section editors. Every editor is a pure
// reducer: Reduce takes the current State and an Action and returns the next
// State without touching its input. Serializing the result and handing it to
// whoever displays it is the job of a Session.
package editor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

// NotEditing is the editing index of a form in add mode.
const NotEditing = -1

type State struct {
	Payload      section.Payload `json:"payload"`
	EditingIndex int             `json:"editingIndex"`
}

func NewState(p section.Payload) State {
	return State{Payload: p, EditingIndex: NotEditing}
}

type Editor interface {
	Kind() section.Kind
	Reduce(s State, a Action) (State, error)
	// DecodeAction builds one of the editor's actions from its wire name and
	// JSON arguments.
	DecodeAction(name string, raw json.RawMessage) (Action, error)
}

type Options struct {
	Assets section.AssetNormalizer
	Now    func() time.Time
	NewID  func() string
}

type Registry struct {
	editors map[section.Kind]Editor
}

func NewRegistry(opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	editors := []Editor{
		Pricing{},
		Testimonials{Assets: opts.Assets, Now: opts.Now},
		Projects{Assets: opts.Assets, NewID: opts.NewID},
		TextImage{Assets: opts.Assets},
		Banner{},
		CustomHTML{},
	}

	r := &Registry{editors: make(map[section.Kind]Editor, len(editors))}
	for _, e := range editors {
		r.editors[e.Kind()] = e
	}
	return r
}

// For returns the editor of kind. Kinds edited as raw content have none.
func (r *Registry) For(kind section.Kind) (Editor, bool) {
	e, ok := r.editors[kind]
	return e, ok
}

func (r *Registry) DecodeAction(kind section.Kind, name string, raw json.RawMessage) (Action, error) {
	e, ok := r.For(kind)
	if !ok {
		return nil, errs.NewUnsupportedSectionTypeError(string(kind))
	}
	return e.DecodeAction(name, raw)
}

// payloadAs extracts the typed payload of s; a nil payload is the empty list.
func payloadAs[P section.Payload](s State) (P, error) {
	var zero P
	if s.Payload == nil {
		return zero, nil
	}
	p, ok := s.Payload.(P)
	if !ok {
		return zero, errs.NewUnsupportedSectionTypeError(string(s.Payload.Kind()))
	}
	return p, nil
}

func actionName(a Action) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", a), "editor.")
}

type namedField struct {
	name, value string
}

// rejectDelimiters fails when a pipe encoded value would break its record.
func rejectDelimiters(fields ...namedField) error {
	for _, f := range fields {
		if section.ContainsDelimiter(f.value) {
			return errs.NewInvalidFieldError(f.name, "must not contain |")
		}
	}
	return nil
}
