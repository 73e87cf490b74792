package section

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/site-sections-backend/errs"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Rating is a 1..5 star score. Stored documents carry it either as a number or
// a string; it is always written back as a string.
type Rating int

func NewRating(v int) Rating {
	switch {
	case v == 0:
		return DefaultRating
	case v < MinRating:
		return MinRating
	case v > MaxRating:
		return MaxRating
	}
	return Rating(v)
}

// ParseRating reads a user supplied rating, falling back to the default.
func ParseRating(s string) Rating {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return DefaultRating
	}
	return NewRating(int(math.Round(f)))
}

func (r Rating) String() string {
	return strconv.Itoa(int(NewRating(int(r))))
}

func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = NewRating(int(math.Round(n)))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rating must be a number or string: %w", err)
	}
	*r = ParseRating(s)
	return nil
}

// Flag decodes booleans that older documents stored as "true"/"1" strings.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Flag(parseBool(s, false))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}
	*f = false
	return nil
}

type Testimonial struct {
	Name      string `json:"name"`
	Quote     string `json:"quote"`
	Rating    Rating `json:"rating"`
	Image     string `json:"image"`
	DateAdded string `json:"dateAdded"`
	Verified  Flag   `json:"verified"`
}

func (t Testimonial) Valid() bool {
	return strings.TrimSpace(t.Name) != "" && strings.TrimSpace(t.Quote) != ""
}

// AddedAt parses DateAdded; unparsable or empty dates sort as the zero time.
func (t Testimonial) AddedAt() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, strings.TrimSpace(t.DateAdded)); err == nil {
			return ts
		}
	}
	return time.Time{}
}

type Testimonials []Testimonial

func (Testimonials) Kind() Kind { return KindTestimonials }

// ParseTestimonials decodes the JSON document, falling back to the legacy
// Name|Quote|Rating|Image records. migrated is true when the legacy grammar was
// used, meaning the caller should write the JSON form back. A JSON document
// that does not decode, or pipe records with no valid entry, yield
// ErrMalformedContent and no items.
func ParseTestimonials(content string) (items Testimonials, migrated bool, err error) {
	if strings.TrimSpace(content) == "" {
		return nil, false, nil
	}

	if isJSONDocument(content) {
		decoded, jsonErr := decodeJSONList[Testimonial](content)
		if jsonErr != nil {
			return nil, false, errs.NewMalformedContentError(string(KindTestimonials), jsonErr)
		}
		return normalizeTestimonials(decoded), false, nil
	}

	for _, rec := range splitRecords(content) {
		parts := splitFields(rec)
		t := Testimonial{
			Name:   field(parts, 0),
			Quote:  field(parts, 1),
			Rating: ParseRating(field(parts, 2)),
			Image:  field(parts, 3),
		}
		if t.Valid() {
			items = append(items, t)
		}
	}
	if len(items) > 0 {
		return items, true, nil
	}
	return nil, false, errs.NewMalformedContentError(string(KindTestimonials), nil)
}

func normalizeTestimonials(in []Testimonial) Testimonials {
	var out Testimonials
	for _, t := range in {
		if !t.Valid() {
			continue
		}
		t.Rating = NewRating(int(t.Rating))
		out = append(out, t)
	}
	return out
}

func SerializeTestimonials(items Testimonials) (string, error) {
	if items == nil {
		items = Testimonials{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeJSONList accepts either an array of T or a single T object.
func decodeJSONList[T any](content string) ([]T, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		var one T
		if err := json.Unmarshal([]byte(trimmed), &one); err != nil {
			return nil, err
		}
		return []T{one}, nil
	}
	var many []T
	if err := json.Unmarshal([]byte(trimmed), &many); err != nil {
		return nil, err
	}
	return many, nil
}
