package editor

import (
	"encoding/json"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

// Action is a user intent understood by one or more editors.
type Action interface {
	action()
}

// Edit opens record Index in the form.
type Edit struct {
	Index int `json:"index"`
}

// CancelEdit puts the form back in add mode.
type CancelEdit struct{}

// Duplicate inserts a copy of record Index right after it.
type Duplicate struct {
	Index int `json:"index"`
}

type Remove struct {
	Index     int  `json:"index"`
	Confirmed bool `json:"confirmed"`
}

type Clear struct {
	Confirmed bool `json:"confirmed"`
}

// Move swaps record Index with its neighbour; a negative Direction moves it up.
type Move struct {
	Index     int `json:"index"`
	Direction int `json:"direction"`
}

// SetImage assigns a picked image to the record being edited.
type SetImage struct {
	URL string `json:"url"`
}

type SavePlan struct {
	Plan section.PricingPlan `json:"plan"`
}

type SaveTestimonial struct {
	Testimonial section.Testimonial `json:"testimonial"`
}

type SortKey string

const (
	SortByName   SortKey = "name"
	SortByRating SortKey = "rating"
	SortByDate   SortKey = "date"
)

type SortTestimonials struct {
	By SortKey `json:"by"`
}

// ImportTestimonials merges the testimonials of an exported document.
type ImportTestimonials struct {
	Data string `json:"data"`
}

type SaveProject struct {
	Project section.Project `json:"project"`
}

// ImportProjects merges an exported project list, matching records by id.
type ImportProjects struct {
	Data string `json:"data"`
}

type SaveBlock struct {
	Block section.Block `json:"block"`
}

type SetBanner struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type SetHTML struct {
	HTML string `json:"html"`
}

func (Edit) action()               {}
func (CancelEdit) action()         {}
func (Duplicate) action()          {}
func (Remove) action()             {}
func (Clear) action()              {}
func (Move) action()               {}
func (SetImage) action()           {}
func (SavePlan) action()           {}
func (SaveTestimonial) action()    {}
func (SortTestimonials) action()   {}
func (ImportTestimonials) action() {}
func (SaveProject) action()        {}
func (ImportProjects) action()     {}
func (SaveBlock) action()          {}
func (SetBanner) action()          {}
func (SetHTML) action()            {}

type actionDecoders map[string]func(json.RawMessage) (Action, error)

func (d actionDecoders) decode(kind section.Kind, name string, raw json.RawMessage) (Action, error) {
	fn, ok := d[name]
	if !ok {
		return nil, errs.NewUnknownActionError(string(kind), name)
	}
	return fn(raw)
}

func decodeAs[A Action](raw json.RawMessage) (Action, error) {
	var a A
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, errs.NewInvalidJSONError(err)
		}
	}
	return a, nil
}
