package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/rpupo63/site-sections-backend/config"
	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/section"
)

func newTestRenderer(t *testing.T, logs *bytes.Buffer) *Renderer {
	t.Helper()
	settings := config.Load(map[string]string{"SITE_BASE_URL": "https://example.com"})
	r, err := New(settings, zerolog.New(logs))
	require.NoError(t, err)

	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("sec-%08d", n)
	}
	return r
}

func row(kind section.Kind, content string) models.Section {
	return models.Section{
		ID:             uuid.New(),
		SectionType:    string(kind),
		Content:        content,
		ContentVersion: section.CurrentVersion,
		IsActive:       true,
	}
}

func TestRenderPricing(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	html, err := r.NewPage(false).Section(row(section.KindPricing, "Pro|29|/month|Great for teams|1|24/7 Support|Unlimited Projects"))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `id="sec-00000001"`)
	assert.Contains(t, out, `class="plan plan-popular"`)
	assert.Contains(t, out, "Most Popular")
	assert.Contains(t, out, "<li>24/7 Support</li>")
	assert.Contains(t, out, "#sec-00000001 .accent")
}

func TestRenderLegacyPricingIsUpgradedInMemory(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	legacy := row(section.KindPricing, "Basic|9|/month|Solo|1 site")
	legacy.ContentVersion = 0

	html, err := r.NewPage(false).Section(legacy)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<li>1 site</li>")
	assert.NotContains(t, string(html), "Most Popular")
}

func TestRenderEscapesUserContent(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	html, err := r.NewPage(false).Section(row(section.KindBanner, `<script>alert(1)</script>|Sub`))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert(1)</script>")
	assert.Contains(t, string(html), "&lt;script&gt;")
}

func TestMalformedContentRendersNothingAndLogs(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)
	broken := row(section.KindTestimonials, `[{"name":`)

	html, err := r.NewPage(false).Section(broken)
	require.NoError(t, err)
	assert.Empty(t, html)
	assert.Contains(t, logs.String(), "unreadable")
	assert.Contains(t, logs.String(), broken.ID.String())

	preview, err := r.NewPage(true).Section(broken)
	require.NoError(t, err)
	assert.Contains(t, string(preview), "No Testimonials content yet.")
}

func TestUnknownSectionTypeIsSkipped(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	html, err := r.NewPage(true).Section(row(section.Kind("carousel3d"), "x"))
	require.NoError(t, err)
	assert.Empty(t, html)
	assert.Contains(t, logs.String(), "unknown type")
}

func TestSharedCSSInjectedOncePerPage(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)
	page := r.NewPage(false)

	first, err := page.Section(row(section.KindSlider, `[{"image":"uploads/a.jpg","caption":"A"}]`))
	require.NoError(t, err)
	second, err := page.Section(row(section.KindSlider, `[{"image":"uploads/b.jpg","caption":"B"}]`))
	require.NoError(t, err)

	assert.Contains(t, string(first), "@keyframes slider-scroll")
	assert.NotContains(t, string(second), "@keyframes slider-scroll")
	assert.Contains(t, string(first), `src="https://example.com/uploads/a.jpg"`)
	assert.NotEqual(t, sectionID(string(first)), sectionID(string(second)))

	other, err := r.NewPage(false).Section(row(section.KindSlider, `[{"image":"uploads/c.jpg"}]`))
	require.NoError(t, err)
	assert.Contains(t, string(other), "@keyframes slider-scroll", "a new page starts with nothing injected")
}

func sectionID(html string) string {
	_, rest, _ := strings.Cut(html, `id="`)
	id, _, _ := strings.Cut(rest, `"`)
	return id
}

func TestRenderProjectsStatusBadges(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	content := `[{"id":"1","name":"Tower","status":"in progress","technologies":"Go, React","images":["uploads/t.jpg"],"startDate":"2020","endDate":"2022"},{"id":"2","name":"Bridge","status":"Cancelled"}]`
	html, err := r.NewPage(false).Section(row(section.KindProjects, content))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `status-in-progress`)
	assert.Contains(t, out, `status-unknown`)
	assert.Contains(t, out, "<li>React</li>")
	assert.Contains(t, out, "2020 – 2022")
}

func TestRenderTestimonialsStars(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	html, err := r.NewPage(false).Section(row(section.KindTestimonials, `[{"name":"Ana","quote":"Great","rating":"4","verified":true,"dateAdded":"2024-03-05T10:00:00Z"}]`))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "★★★★☆")
	assert.Contains(t, out, "Verified")
	assert.Contains(t, out, "Mar 2024")
}

func TestRenderContentColumns(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	short, err := r.NewPage(false).Section(row(section.KindContent, "Hello **world**"))
	require.NoError(t, err)
	assert.Contains(t, string(short), "columns-1")
	assert.Contains(t, string(short), "<strong>world</strong>")

	long, err := r.NewPage(false).Section(row(section.KindContent, words(260, 7)))
	require.NoError(t, err)
	assert.Contains(t, string(long), "columns-2")
}

func TestRenderCustomHTMLIsSanitized(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	html, err := r.NewPage(false).Section(row(section.KindCustomHTML, `<div class="promo" onclick="steal()">Hi<script>alert(1)</script></div>`))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<div class="promo">Hi</div>`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "<script>")
}

func TestRenderPage(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, &logs)

	inactive := row(section.KindBanner, "Hidden")
	inactive.IsActive = false
	sections := []models.Section{
		row(section.KindBanner, "Welcome|We build websites"),
		inactive,
		row(section.KindFAQ, "Q1|A1"),
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, "Home", sections, false))

	out := buf.String()
	assert.Contains(t, out, "<title>Home</title>")
	assert.Contains(t, out, "We build websites")
	assert.NotContains(t, out, "Hidden")
	assert.Less(t, strings.Index(out, "Welcome"), strings.Index(out, "<summary>Q1</summary>"))
	assert.Equal(t, 1, strings.Count(out, "@keyframes section-reveal"))

	buf.Reset()
	require.NoError(t, r.RenderPage(&buf, "Home", sections, true))
	assert.Contains(t, buf.String(), "Hidden", "previews show inactive sections")
}

func TestBackgroundStyle(t *testing.T) {
	theme := NewTheme(config.ThemeColors{Primary: "#111111", Secondary: "#222222", Text: "#333333", Background: "#444444"})

	tests := []struct {
		name string
		bg   Background
		want template.CSS
	}{
		{
			name: "solid",
			bg:   Background{Type: "solid", Color: "rgba(0, 0, 0, 0.5)", TextColor: "white"},
			want: "background-color: rgba(0, 0, 0, 0.5); color: white;",
		},
		{
			name: "invalid colors fall back to theme",
			bg:   Background{Type: "solid", Color: "red; background:url(x)", TextColor: "#12"},
			want: "background-color: #444444; color: #333333;",
		},
		{
			name: "gradient",
			bg:   Background{Type: "gradient", Gradient: models.Gradient{From: "#ff0000", To: "nope()", Direction: "to right"}},
			want: "background: linear-gradient(to right, #ff0000, #222222); color: #333333;",
		},
		{
			name: "gradient bad direction",
			bg:   Background{Type: "gradient", Gradient: models.Gradient{Direction: "sideways"}},
			want: "background: linear-gradient(135deg, #111111, #222222); color: #333333;",
		},
		{
			name: "image with percentage overlay",
			bg:   Background{Type: "image", ImageURL: "public/hero.jpg", Overlay: 40},
			want: `background-image: linear-gradient(rgba(0, 0, 0, 0.40), rgba(0, 0, 0, 0.40)), url("https://example.com/public/hero.jpg"); background-size: cover; background-position: center; color: #333333;`,
		},
		{
			name: "image url that breaks out falls back to solid",
			bg:   Background{Type: "image", ImageURL: `x.jpg"); background: red; ("`, Color: "#abcdef"},
			want: "background-color: #abcdef; color: #333333;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BackgroundStyle(tt.bg, theme, "https://example.com"))
		})
	}
}

func TestBackgroundOf(t *testing.T) {
	s := models.Section{BackgroundType: "gradient", Gradient: datatypes.JSON(`{"from":"#000","to":"#fff","direction":"45deg"}`)}
	bg, err := BackgroundOf(s)
	require.NoError(t, err)
	assert.Equal(t, models.Gradient{From: "#000", To: "#fff", Direction: "45deg"}, bg.Gradient)

	s.Gradient = datatypes.JSON(`{`)
	_, err = BackgroundOf(s)
	assert.Error(t, err)
}

func TestValidColor(t *testing.T) {
	for _, c := range []string{"#fff", "#ffffff80", "rgb(1, 2, 3)", "rgba(1,2,3,.5)", "hsl(120, 50%, 50%)", "hsla(120deg,50%,50%,0.3)", "transparent"} {
		assert.True(t, ValidColor(c), c)
	}
	for _, c := range []string{"", "#ggg", "rgb(1,2)", "red;", "url(x)", "expression(alert(1))"} {
		assert.False(t, ValidColor(c), c)
	}
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "completed", StatusClass("Completed"))
	assert.Equal(t, "on-hold", StatusClass("on_hold"))
	assert.Equal(t, "unknown", StatusClass(""))
}
