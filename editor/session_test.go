package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/rpupo63/site-sections-backend/errs"
	"github.com/rpupo63/site-sections-backend/section"
)

type SessionSuite struct {
	suite.Suite
	registry *Registry
	changes  []Change
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.registry = NewRegistry(Options{Assets: testAssets})
	s.changes = nil
}

func (s *SessionSuite) editor(kind section.Kind) Editor {
	e, ok := s.registry.For(kind)
	s.Require().True(ok)
	return e
}

func (s *SessionSuite) record(c Change) {
	s.changes = append(s.changes, c)
}

func (s *SessionSuite) TestLoadMigratesLegacyPricing() {
	field := NewField("Basic|9|/month|Solo|Email")

	session, err := NewSession(s.editor(section.KindPricing), field, 0)
	s.Require().NoError(err)
	defer session.Close()

	s.Equal("Basic|9|/month|Solo|0|Email", field.Value())
	s.Equal(section.CurrentVersion, session.Version())
	plans := session.State().Payload.(section.Plans)
	s.Require().Len(plans, 1)
	s.Equal([]string{"Email"}, plans[0].Features)
	s.Equal(NotEditing, session.State().EditingIndex)
}

func (s *SessionSuite) TestCurrentVersionIsNotMigratedAgain() {
	field := NewField("Odd|5|/month|desc|Other")

	session, err := NewSession(s.editor(section.KindPricing), field, section.CurrentVersion)
	s.Require().NoError(err)
	defer session.Close()

	s.Equal("Odd|5|/month|desc|Other", field.Value())
}

func (s *SessionSuite) TestDispatchWritesFieldAndNotifiesPreview() {
	field := NewField("")
	session, err := NewSession(s.editor(section.KindPricing), field, section.CurrentVersion)
	s.Require().NoError(err)
	defer session.Close()

	unsubscribe := field.Subscribe(s.record)
	defer unsubscribe()

	_, err = session.Dispatch(SavePlan{Plan: section.PricingPlan{Name: "Pro", Price: "29"}})
	s.Require().NoError(err)

	s.Equal("Pro|29|/month| |0", field.Value())
	s.Require().Len(s.changes, 1)
	s.True(s.changes[0].Programmatic)
	s.Len(session.State().Payload.(section.Plans), 1, "the editor does not re-parse its own write")

	_, err = session.Dispatch(SavePlan{Plan: section.PricingPlan{Name: "Broken"}})
	s.True(errs.IsMissingRequiredFieldError(err))
	s.Len(s.changes, 1, "failed actions do not touch the field")
}

func (s *SessionSuite) TestRawInputIsParsed() {
	field := NewField(`[{"name":"Ana","quote":"Hi","rating":5}]`)
	session, err := NewSession(s.editor(section.KindTestimonials), field, section.CurrentVersion)
	s.Require().NoError(err)
	defer session.Close()

	field.Input(`[{"name":"Ana","quote":"Hi"},{"name":"Bo","quote":"Yo"}]`)
	s.Len(session.State().Payload.(section.Testimonials), 2)
	s.NoError(session.Err())

	field.Input(`[{"name":`)
	s.True(errs.IsMalformedContentError(session.Err()))
	s.Len(session.State().Payload.(section.Testimonials), 2, "unreadable input keeps the last good state")
}

func (s *SessionSuite) TestLoadRejectsMalformedContent() {
	_, err := NewSession(s.editor(section.KindProjects), NewField(`{"name":`), section.CurrentVersion)
	s.True(errs.IsMalformedContentError(err))
}

func (s *SessionSuite) TestImagePickerRoutesToLastClaimant() {
	field := NewField(`[{"name":"Ana","quote":"Hi"}]`)
	session, err := NewSession(s.editor(section.KindTestimonials), field, section.CurrentVersion)
	s.Require().NoError(err)
	defer session.Close()

	_, err = session.Dispatch(Edit{Index: 0})
	s.Require().NoError(err)

	var other []string
	picker := &ImagePicker{Assets: testAssets}
	picker.Claim("text_image", func(url string) error {
		other = append(other, url)
		return nil
	})
	picker.Claim("testimonials", session.ImageTarget())
	s.Equal("testimonials", picker.Owner())

	s.Require().NoError(picker.Select("https://example.com/public/ana.jpg"))
	s.Equal("uploads/ana.jpg", session.State().Payload.(section.Testimonials)[0].Image)
	s.Empty(other)
	s.Contains(field.Value(), `"image":"uploads/ana.jpg"`)

	picker.Release("text_image")
	s.Equal("testimonials", picker.Owner(), "only the owner can release")
	picker.Release("testimonials")
	s.True(errors.Is(picker.Select("x.jpg"), errs.ErrNoImageTarget))
}

func TestFieldUnsubscribe(t *testing.T) {
	f := NewField("a")
	var got []string
	unsubscribe := f.Subscribe(func(c Change) { got = append(got, c.Value) })

	f.Input("b")
	unsubscribe()
	f.Write("c")

	require.Equal(t, []string{"b"}, got)
	require.Equal(t, "c", f.Value())
}
