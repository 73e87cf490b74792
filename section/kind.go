// Package section holds the typed payload of every section kind together with
// the grammar its content column is stored in.
package section

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rpupo63/site-sections-backend/errs"
)

type Kind string

const (
	KindBanner       Kind = "banner"
	KindPricing      Kind = "pricing"
	KindTestimonials Kind = "testimonials"
	KindProjects     Kind = "projects"
	KindTextImage    Kind = "text_image"
	KindFAQ          Kind = "faq"
	KindSlider       Kind = "slider"
	KindContent      Kind = "content"
	KindCustomHTML   Kind = "custom_html"
)

// Kinds lists every supported kind in admin display order.
var Kinds = []Kind{
	KindBanner,
	KindPricing,
	KindTestimonials,
	KindProjects,
	KindTextImage,
	KindFAQ,
	KindSlider,
	KindContent,
	KindCustomHTML,
}

var kindAliases = map[string]Kind{
	"hero":            KindBanner,
	"plans":           KindPricing,
	"testimonial":     KindTestimonials,
	"project":         KindProjects,
	"text_with_image": KindTextImage,
	"text-image":      KindTextImage,
	"faqs":            KindFAQ,
	"slides":          KindSlider,
	"text":            KindContent,
	"html":            KindCustomHTML,
	"custom-html":     KindCustomHTML,
}

// ParseKind maps a stored section_type onto a Kind.
func ParseKind(sectionType string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(sectionType))
	for _, k := range Kinds {
		if string(k) == normalized {
			return k, nil
		}
	}
	if k, ok := kindAliases[normalized]; ok {
		return k, nil
	}
	return "", errs.NewUnsupportedSectionTypeError(sectionType)
}

// Label is the human readable name shown in the admin section list.
func (k Kind) Label() string {
	switch k {
	case KindFAQ:
		return "FAQ"
	case KindCustomHTML:
		return "Custom HTML"
	case KindTextImage:
		return "Text with Image"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(k), "_", " "))
}
