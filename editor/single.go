package editor

import (
	"encoding/json"
	"strings"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

// Banner edits the single Title|Subtitle record of a hero section.
type Banner struct{}

var bannerActions = actionDecoders{
	"set": decodeAs[SetBanner],
}

func (Banner) Kind() section.Kind { return section.KindBanner }

func (e Banner) DecodeAction(name string, raw json.RawMessage) (Action, error) {
	return bannerActions.decode(e.Kind(), name, raw)
}

func (e Banner) Reduce(s State, a Action) (State, error) {
	if _, err := payloadAs[section.Banner](s); err != nil {
		return s, err
	}

	set, ok := a.(SetBanner)
	if !ok {
		return s, errs.NewUnknownActionError(string(e.Kind()), actionName(a))
	}
	b := section.Banner{Title: strings.TrimSpace(set.Title), Subtitle: strings.TrimSpace(set.Subtitle)}
	if b.Title == "" {
		return s, errs.NewMissingRequiredFieldError("title")
	}
	if err := rejectDelimiters(namedField{"title", b.Title}); err != nil {
		return s, err
	}
	return NewState(b), nil
}

type CustomHTML struct{}

var customHTMLActions = actionDecoders{
	"set": decodeAs[SetHTML],
}

func (CustomHTML) Kind() section.Kind { return section.KindCustomHTML }

func (e CustomHTML) DecodeAction(name string, raw json.RawMessage) (Action, error) {
	return customHTMLActions.decode(e.Kind(), name, raw)
}

// Reduce stores the markup as typed; it is sanitized when rendered.
func (e CustomHTML) Reduce(s State, a Action) (State, error) {
	if _, err := payloadAs[section.CustomHTML](s); err != nil {
		return s, err
	}

	set, ok := a.(SetHTML)
	if !ok {
		return s, errs.NewUnknownActionError(string(e.Kind()), actionName(a))
	}
	return NewState(section.CustomHTML{HTML: set.HTML}), nil
}
