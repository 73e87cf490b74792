package editor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

var testAssets = section.AssetNormalizer{BaseURL: "https://example.com", LegacyFolder: section.DefaultLegacyFolder}

func fixedTestimonials() Testimonials {
	return Testimonials{
		Assets: testAssets,
		Now:    func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func testimonialsOf(t *testing.T, s State) section.Testimonials {
	t.Helper()
	items, ok := s.Payload.(section.Testimonials)
	require.True(t, ok, "payload is %T", s.Payload)
	return items
}

func names(items section.Testimonials) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.Name
	}
	return out
}

func TestTestimonialStats(t *testing.T) {
	empty, err := json.Marshal(TestimonialStats(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"averageRating":0,"verified":0,"unverified":0}`, string(empty))

	stats := TestimonialStats(section.Testimonials{
		{Name: "A", Quote: "q", Rating: 5, Verified: true},
		{Name: "B", Quote: "q", Rating: 3},
	})
	assert.Equal(t, Stats{Total: 2, AverageRating: "4.0", Verified: 1, Unverified: 1}, stats)
}

func TestSaveTestimonial(t *testing.T) {
	e := fixedTestimonials()

	next, err := e.Reduce(NewState(nil), SaveTestimonial{Testimonial: section.Testimonial{
		Name:  "Ana",
		Quote: "Great work",
		Image: "https://example.com/public/ana.jpg",
	}})
	require.NoError(t, err)

	items := testimonialsOf(t, next)
	require.Len(t, items, 1)
	assert.Equal(t, section.Rating(section.DefaultRating), items[0].Rating)
	assert.Equal(t, "uploads/ana.jpg", items[0].Image)
	assert.Equal(t, "2025-01-02T03:04:05Z", items[0].DateAdded)

	_, err = e.Reduce(next, SaveTestimonial{Testimonial: section.Testimonial{Name: "Bo"}})
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}

func TestSaveTestimonialKeepsDateOnUpdate(t *testing.T) {
	s := State{
		Payload:      section.Testimonials{{Name: "Ana", Quote: "Old", Rating: 4, DateAdded: "2020-01-01"}},
		EditingIndex: 0,
	}

	next, err := fixedTestimonials().Reduce(s, SaveTestimonial{Testimonial: section.Testimonial{Name: "Ana", Quote: "New", Rating: 9}})
	require.NoError(t, err)

	items := testimonialsOf(t, next)
	assert.Equal(t, "2020-01-01", items[0].DateAdded)
	assert.Equal(t, section.Rating(section.MaxRating), items[0].Rating)
	assert.Equal(t, NotEditing, next.EditingIndex)
}

func TestMoveTestimonialFollowsEditingIndex(t *testing.T) {
	s := State{
		Payload:      section.Testimonials{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		EditingIndex: 1,
	}
	e := fixedTestimonials()

	up, err := e.Reduce(s, Move{Index: 1, Direction: -1})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(testimonialsOf(t, up)))
	assert.Equal(t, 0, up.EditingIndex)

	down, err := e.Reduce(s, Move{Index: 0, Direction: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(testimonialsOf(t, down)))
	assert.Equal(t, 0, down.EditingIndex, "the edited record was swapped up")

	_, err = e.Reduce(s, Move{Index: 0, Direction: -1})
	assert.True(t, errs.IsIndexOutOfRangeError(err))

	_, err = e.Reduce(s, Move{Index: 0})
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestSortTestimonials(t *testing.T) {
	s := State{
		Payload: section.Testimonials{
			{Name: "carla", Rating: 3, DateAdded: "2024-01-01"},
			{Name: "Ana", Rating: 5, DateAdded: ""},
			{Name: "bo", Rating: 4, DateAdded: "2025-06-01T10:00:00Z"},
		},
		EditingIndex: 0,
	}
	e := fixedTestimonials()

	tests := []struct {
		by          SortKey
		want        []string
		wantEditing int
	}{
		{SortByName, []string{"Ana", "bo", "carla"}, 2},
		{SortByRating, []string{"Ana", "bo", "carla"}, 2},
		{SortByDate, []string{"bo", "carla", "Ana"}, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.by), func(t *testing.T) {
			next, err := e.Reduce(s, SortTestimonials{By: tt.by})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(testimonialsOf(t, next)))
			assert.Equal(t, tt.wantEditing, next.EditingIndex)
		})
	}

	_, err := e.Reduce(s, SortTestimonials{By: "mood"})
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestImportTestimonialsMerges(t *testing.T) {
	s := NewState(section.Testimonials{{Name: "A", Quote: "q", Rating: 5}})
	data := `[{"name":"B","quote":"q","rating":"4","image":"/public/b.jpg"},{"name":"","quote":"dropped"}]`

	next, err := fixedTestimonials().Reduce(s, ImportTestimonials{Data: data})
	require.NoError(t, err)

	items := testimonialsOf(t, next)
	assert.Equal(t, []string{"A", "B"}, names(items))
	assert.Equal(t, "uploads/b.jpg", items[1].Image)

	_, err = fixedTestimonials().Reduce(s, ImportTestimonials{Data: `[{"name":`})
	assert.True(t, errs.IsMalformedContentError(err))
}

func TestDuplicateAndSetImage(t *testing.T) {
	s := State{Payload: section.Testimonials{{Name: "A", Quote: "q", Rating: 5}}, EditingIndex: NotEditing}
	e := fixedTestimonials()

	dup, err := e.Reduce(s, Duplicate{Index: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A"}, names(testimonialsOf(t, dup)))

	_, err = e.Reduce(dup, SetImage{URL: "x.jpg"})
	assert.True(t, errs.IsNoActiveRecordError(err))

	editing, err := e.Reduce(dup, Edit{Index: 1})
	require.NoError(t, err)
	withImage, err := e.Reduce(editing, SetImage{URL: "/uploads//x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "uploads/x.jpg", testimonialsOf(t, withImage)[1].Image)
	assert.Empty(t, testimonialsOf(t, dup)[1].Image)
}

func TestExport(t *testing.T) {
	data, err := Export(section.Testimonials{{Name: "A", Quote: "q", Rating: 4}})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "4", decoded[0]["rating"])

	empty, err := Export(section.Projects(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))

	_, err = Export(section.Banner{})
	assert.True(t, errs.IsUnsupportedSectionTypeError(err))
}
