// Package render turns stored section rows into server side HTML. Content is
// decoded leniently: a section whose content cannot be read renders as empty
// and the problem is logged.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/rpupo63/site-sections-backend/config"
	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/section"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

type Renderer struct {
	theme    Theme
	baseURL  string
	tmpl     *template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	logger   zerolog.Logger
	newID    func() string
}

func New(settings config.Settings, logger zerolog.Logger) (*Renderer, error) {
	tmpl, err := template.New("sections").ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse section templates: %w", err)
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()

	return &Renderer{
		theme:   NewTheme(settings.Theme),
		baseURL: settings.SiteBaseURL,
		tmpl:    tmpl,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		policy: policy,
		logger: logger.With().Str("component", "render").Logger(),
		newID:  func() string { return "sec-" + uuid.NewString()[:8] },
	}, nil
}

// Page renders the sections of one response. It is not shared between
// requests: it remembers which shared CSS blocks and DOM ids it already used.
type Page struct {
	r        *Renderer
	preview  bool
	injected map[string]bool
	ids      map[string]bool
}

// NewPage starts a page. In preview mode empty and inactive sections render a
// placeholder instead of nothing.
func (r *Renderer) NewPage(preview bool) *Page {
	return &Page{
		r:        r,
		preview:  preview,
		injected: make(map[string]bool),
		ids:      make(map[string]bool),
	}
}

type sectionView struct {
	ID     string
	Kind   section.Kind
	Label  string
	Style  template.CSS
	Shared template.CSS
	Scoped template.CSS
	Data   any
}

type pageView struct {
	Title     string
	BaseCSS   template.CSS
	BodyStyle template.CSS
	Sections  []template.HTML
}

// RenderPage writes a complete HTML document for sections, in the given order.
func (r *Renderer) RenderPage(w io.Writer, title string, sections []models.Section, preview bool) error {
	page := r.NewPage(preview)

	view := pageView{
		Title:     title,
		BaseCSS:   baseCSS,
		BodyStyle: template.CSS(fmt.Sprintf("background-color: %s; color: %s;", r.theme.Background, r.theme.Text)),
	}
	for _, s := range sections {
		if !s.IsActive && !preview {
			continue
		}
		html, err := page.Section(s)
		if err != nil {
			return err
		}
		if html != "" {
			view.Sections = append(view.Sections, html)
		}
	}
	return r.tmpl.ExecuteTemplate(w, "page", view)
}

// Section renders one row. Rows of unknown type are skipped.
func (p *Page) Section(s models.Section) (template.HTML, error) {
	logger := p.r.logger.With().
		Str("sectionID", s.ID.String()).
		Str("sectionType", s.SectionType).
		Logger()

	kind, err := s.Kind()
	if err != nil {
		logger.Warn().Err(err).Msg("skipping section of unknown type")
		return "", nil
	}

	content := s.Content
	if up, err := section.Upgrade(kind, content, s.ContentVersion); err == nil {
		content = up.Content
	}
	payload, err := section.DecodeLenient(kind, content)
	if err != nil {
		logger.Warn().Err(err).Msg("section content is unreadable, rendering it empty")
	}

	bg, err := BackgroundOf(s)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring unreadable gradient")
	}

	data, empty := p.r.view(payload)
	if empty && !p.preview {
		return "", nil
	}

	v := sectionView{
		ID:    p.nextID(),
		Kind:  kind,
		Label: kind.Label(),
		Style: BackgroundStyle(bg, p.r.theme, p.r.baseURL),
		Data:  data,
	}
	v.Scoped = scopedCSS(v.ID, p.r.theme)
	v.Shared = p.shared("reveal", string(kind))

	name := string(kind)
	if empty {
		name = "empty"
	}
	var buf bytes.Buffer
	if err := p.r.tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("render %s section %s: %w", kind, s.ID, err)
	}
	return template.HTML(buf.String()), nil
}

// shared returns the CSS blocks named by keys that this page has not emitted yet.
func (p *Page) shared(keys ...string) template.CSS {
	var parts []string
	for _, key := range keys {
		css, ok := sharedCSS[key]
		if !ok || p.injected[key] {
			continue
		}
		p.injected[key] = true
		parts = append(parts, css)
	}
	return template.CSS(strings.Join(parts, "\n"))
}

func (p *Page) nextID() string {
	for {
		id := p.r.newID()
		if !p.ids[id] {
			p.ids[id] = true
			return id
		}
	}
}
