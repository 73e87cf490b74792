package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/rpupo63/site-sections-backend/section"
)

type testimonialView struct {
	Name     string
	Quote    string
	Rating   int
	Stars    string
	Image    string
	Verified bool
	Date     string
}

type projectView struct {
	section.Project
	Images      []string
	Tech        []string
	StatusLabel string
	StatusClass string
	Period      string
}

type blockView struct {
	section.Block
	ImageURL string
}

type slideView struct {
	section.Slide
	ImageURL string
}

var statusClasses = map[section.ProjectStatus]string{
	section.StatusCompleted:  "completed",
	section.StatusInProgress: "in-progress",
	section.StatusOnHold:     "on-hold",
	section.StatusPlanned:    "planned",
}

// StatusClass maps a free text project status to its badge class.
func StatusClass(status string) string {
	canonical, ok := section.CanonicalStatus(status)
	if !ok {
		return "unknown"
	}
	return statusClasses[canonical]
}

// view prepares the template data of a payload and reports whether there is
// nothing to show.
func (r *Renderer) view(p section.Payload) (any, bool) {
	switch v := p.(type) {
	case section.Banner:
		return v, v.Title == "" && v.Subtitle == ""
	case section.Plans:
		return v, len(v) == 0
	case section.Testimonials:
		out := make([]testimonialView, 0, len(v))
		for _, t := range v {
			rating := int(section.NewRating(int(t.Rating)))
			tv := testimonialView{
				Name:     t.Name,
				Quote:    t.Quote,
				Rating:   rating,
				Stars:    strings.Repeat("★", rating) + strings.Repeat("☆", section.MaxRating-rating),
				Image:    section.AssetURL(t.Image, r.baseURL),
				Verified: bool(t.Verified),
			}
			if at := t.AddedAt(); !at.IsZero() {
				tv.Date = at.Format("Jan 2006")
			}
			out = append(out, tv)
		}
		return out, len(out) == 0
	case section.Projects:
		out := make([]projectView, 0, len(v))
		for _, p := range v {
			pv := projectView{Project: p, StatusClass: StatusClass(p.Status)}
			if status, ok := section.CanonicalStatus(p.Status); ok {
				pv.StatusLabel = string(status)
			} else {
				pv.StatusLabel = strings.TrimSpace(p.Status)
			}
			for _, img := range p.Images {
				pv.Images = append(pv.Images, section.AssetURL(img, r.baseURL))
			}
			for _, tech := range strings.Split(p.Technologies, ",") {
				if tech = strings.TrimSpace(tech); tech != "" {
					pv.Tech = append(pv.Tech, tech)
				}
			}
			pv.Period = strings.Trim(strings.TrimSpace(p.StartDate+" – "+p.EndDate), "– ")
			out = append(out, pv)
		}
		return out, len(out) == 0
	case section.Blocks:
		out := make([]blockView, 0, len(v))
		for _, b := range v {
			b.Position = section.NormalizePosition(b.Position)
			out = append(out, blockView{Block: b, ImageURL: section.AssetURL(b.Image, r.baseURL)})
		}
		return out, len(out) == 0
	case section.FAQs:
		return v, len(v) == 0
	case section.Slides:
		out := make([]slideView, 0, len(v))
		for _, s := range v {
			out = append(out, slideView{Slide: s, ImageURL: section.AssetURL(s.Image, r.baseURL)})
		}
		return out, len(out) == 0
	case section.Content:
		columns := r.columns(v.Body)
		return columns, len(columns) == 0
	case section.CustomHTML:
		html := template.HTML(r.policy.Sanitize(v.HTML))
		return html, strings.TrimSpace(string(html)) == ""
	}
	return nil, true
}

// columns renders markdown in one column, or two for long texts.
func (r *Renderer) columns(body string) []template.HTML {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	var out []template.HTML
	for _, part := range SplitLongText(body) {
		var buf bytes.Buffer
		if err := r.markdown.Convert([]byte(part), &buf); err != nil {
			r.logger.Warn().Err(err).Msg("markdown conversion failed, showing text as typed")
			out = append(out, template.HTML(template.HTMLEscapeString(part)))
			continue
		}
		out = append(out, template.HTML(r.policy.SanitizeBytes(buf.Bytes())))
	}
	return out
}
