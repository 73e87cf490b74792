package editor

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

type Testimonials struct {
	Assets section.AssetNormalizer
	Now    func() time.Time
}

var testimonialActions = actionDecoders{
	"save":      decodeAs[SaveTestimonial],
	"edit":      decodeAs[Edit],
	"cancel":    decodeAs[CancelEdit],
	"duplicate": decodeAs[Duplicate],
	"remove":    decodeAs[Remove],
	"move":      decodeAs[Move],
	"clear":     decodeAs[Clear],
	"sort":      decodeAs[SortTestimonials],
	"import":    decodeAs[ImportTestimonials],
	"setImage":  decodeAs[SetImage],
}

func (Testimonials) Kind() section.Kind { return section.KindTestimonials }

func (e Testimonials) DecodeAction(name string, raw json.RawMessage) (Action, error) {
	return testimonialActions.decode(e.Kind(), name, raw)
}

func (e Testimonials) now() string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return now().UTC().Format(time.RFC3339)
}

func (e Testimonials) Reduce(s State, a Action) (State, error) {
	items, err := payloadAs[section.Testimonials](s)
	if err != nil {
		return s, err
	}

	switch a := a.(type) {
	case SaveTestimonial:
		t := section.Testimonial{
			Name:      strings.TrimSpace(a.Testimonial.Name),
			Quote:     strings.TrimSpace(a.Testimonial.Quote),
			Rating:    section.NewRating(int(a.Testimonial.Rating)),
			Image:     e.Assets.Normalize(a.Testimonial.Image),
			DateAdded: strings.TrimSpace(a.Testimonial.DateAdded),
			Verified:  a.Testimonial.Verified,
		}
		if t.Name == "" {
			return s, errs.NewMissingRequiredFieldError("name")
		}
		if t.Quote == "" {
			return s, errs.NewMissingRequiredFieldError("quote")
		}
		if t.DateAdded == "" {
			if s.EditingIndex != NotEditing && s.EditingIndex < len(items) {
				t.DateAdded = items[s.EditingIndex].DateAdded
			}
			if t.DateAdded == "" {
				t.DateAdded = e.now()
			}
		}
		out, err := upsert(items, s.EditingIndex, t)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: NotEditing}, nil

	case Duplicate:
		if err := checkIndex(a.Index, len(items)); err != nil {
			return s, err
		}
		dup := items[a.Index]
		dup.DateAdded = e.now()
		out, editing, err := insertAfter(items, s.EditingIndex, a.Index, dup)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: editing}, nil

	case Move:
		out, editing, err := swapAdjacent(items, s.EditingIndex, a.Index, a.Direction)
		if err != nil {
			return s, err
		}
		return State{Payload: out, EditingIndex: editing}, nil

	case SortTestimonials:
		less, err := testimonialOrder(a.By)
		if err != nil {
			return s, err
		}
		out, editing := reorder(items, s.EditingIndex, less)
		return State{Payload: out, EditingIndex: editing}, nil

	case ImportTestimonials:
		imported, _, err := section.ParseTestimonials(a.Data)
		if err != nil {
			return s, err
		}
		if len(imported) == 0 {
			return s, errs.NewInvalidFieldError("data", "no valid testimonials found")
		}
		out := append(section.Testimonials{}, items...)
		for _, t := range imported {
			t.Image = e.Assets.Normalize(t.Image)
			out = append(out, t)
		}
		return State{Payload: out, EditingIndex: s.EditingIndex}, nil

	case SetImage:
		if s.EditingIndex == NotEditing {
			return s, errs.NewNoActiveRecordError()
		}
		if err := checkIndex(s.EditingIndex, len(items)); err != nil {
			return s, err
		}
		t := items[s.EditingIndex]
		t.Image = e.Assets.Normalize(a.URL)
		out, err := upsert(items, s.EditingIndex, t)
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

// testimonialOrder sorts names alphabetically, ratings and dates highest first.
func testimonialOrder(by SortKey) (func(a, b section.Testimonial) int, error) {
	switch by {
	case SortByName:
		return func(a, b section.Testimonial) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}, nil
	case SortByRating:
		return func(a, b section.Testimonial) int {
			return cmp.Compare(b.Rating, a.Rating)
		}, nil
	case SortByDate:
		return func(a, b section.Testimonial) int {
			return b.AddedAt().Compare(a.AddedAt())
		}, nil
	}
	return nil, errs.NewInvalidFieldError("by", fmt.Sprintf("unknown sort key %q", by))
}

// AverageRating is the mean rating to one decimal, written as a string such as
// "4.0". The average of an empty list is written as the number 0.
type AverageRating string

func (a AverageRating) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("0"), nil
	}
	return json.Marshal(string(a))
}

type Stats struct {
	Total         int    `json:"total"`
	AverageRating AverageRating `json:"averageRating"`
	Verified      int    `json:"verified"`
	Unverified    int    `json:"unverified"`
}

// TestimonialStats counts the list and averages its ratings to one decimal.
func TestimonialStats(items section.Testimonials) Stats {
	if len(items) == 0 {
		return Stats{}
	}

	stats := Stats{Total: len(items)}
	sum := 0
	for _, t := range items {
		sum += int(section.NewRating(int(t.Rating)))
		if t.Verified {
			stats.Verified++
		} else {
			stats.Unverified++
		}
	}
	stats.AverageRating = AverageRating(fmt.Sprintf("%.1f", float64(sum)/float64(len(items))))
	return stats
}

// Export renders a list payload as an indented JSON document that the import
// actions accept back.
func Export(p section.Payload) ([]byte, error) {
	switch v := p.(type) {
	case section.Testimonials:
		if v == nil {
			v = section.Testimonials{}
		}
		return json.MarshalIndent(v, "", "  ")
	case section.Projects:
		if v == nil {
			v = section.Projects{}
		}
		return json.MarshalIndent(v, "", "  ")
	case nil:
		return nil, errs.NewBadRequestError("nothing to export")
	}
	return nil, errs.NewUnsupportedSectionTypeError(string(p.Kind()))
}
