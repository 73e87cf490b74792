package editor

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

type Projects struct {
	Assets section.AssetNormalizer
	NewID  func() string
}

var projectActions = actionDecoders{
	"new":      decodeAs[CancelEdit],
	"edit":     decodeAs[Edit],
	"save":     decodeAs[SaveProject],
	"delete":   decodeAs[Remove],
	"clear":    decodeAs[Clear],
	"import":   decodeAs[ImportProjects],
	"setImage": decodeAs[SetImage],
}

func (Projects) Kind() section.Kind { return section.KindProjects }

func (e Projects) DecodeAction(name string, raw json.RawMessage) (Action, error) {
	return projectActions.decode(e.Kind(), name, raw)
}

func (e Projects) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func (e Projects) Reduce(s State, a Action) (State, error) {
	items, err := payloadAs[section.Projects](s)
	if err != nil {
		return s, err
	}

	switch a := a.(type) {
	case SaveProject:
		p, err := e.cleanProject(a.Project)
		if err != nil {
			return s, err
		}
		if s.EditingIndex != NotEditing {
			if err := checkIndex(s.EditingIndex, len(items)); err != nil {
				return s, err
			}
			p.ID = items[s.EditingIndex].ID
		} else {
			p.ID = ""
		}
		if p.ID == "" {
			p.ID = e.newID()
		}
		out, err := upsert(items, s.EditingIndex, p)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: NotEditing}, nil

	case ImportProjects:
		imported, _, err := section.ParseProjects(a.Data)
		if err != nil {
			return s, err
		}
		if len(imported) == 0 {
			return s, errs.NewInvalidFieldError("data", "no valid projects found")
		}
		out := slices.Clone(items)
		for _, p := range imported {
			p, err := e.cleanProject(p)
			if err != nil {
				return s, err
			}
			if i := slices.IndexFunc(out, func(q section.Project) bool { return q.ID == p.ID }); i >= 0 {
				out[i] = p
				continue
			}
			out = append(out, p)
		}
		return State{Payload: out, EditingIndex: s.EditingIndex}, nil

	case SetImage:
		if s.EditingIndex == NotEditing {
			return s, errs.NewNoActiveRecordError()
		}
		if err := checkIndex(s.EditingIndex, len(items)); err != nil {
			return s, err
		}
		url := e.Assets.Normalize(a.URL)
		if section.IsDataURL(url) {
			return s, errs.NewImageNotUploadedError(len(items[s.EditingIndex].Images))
		}
		p := items[s.EditingIndex]
		if url != "" && !slices.Contains(p.Images, url) {
			p.Images = append(slices.Clone(p.Images), url)
		}
		out, err := upsert(items, s.EditingIndex, p)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: s.EditingIndex}, nil
	}

	next, err := reduceList(items, s.EditingIndex, a)
	if err != nil {
		return s, err
	}
	return next, nil
}

// cleanProject trims the form, canonicalizes known statuses and refuses
// images that have not reached the upload store yet.
func (e Projects) cleanProject(p section.Project) (section.Project, error) {
	out := p
	out.ID = strings.TrimSpace(p.ID)
	out.Name = strings.TrimSpace(p.Name)
	out.Description = strings.TrimSpace(p.Description)
	if out.Name == "" {
		return out, errs.NewMissingRequiredFieldError("name")
	}
	if i := p.PendingImage(); i >= 0 {
		return out, errs.NewImageNotUploadedError(i)
	}

	out.Images = nil
	for _, img := range p.Images {
		if img = e.Assets.Normalize(img); img != "" {
			out.Images = append(out.Images, img)
		}
	}

	status, _ := section.CanonicalStatus(p.Status)
	out.Status = string(status)
	return out, nil
}
