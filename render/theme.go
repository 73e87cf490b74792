package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/rpupo63/site-sections-backend/config"
)

// Theme holds validated colors, safe to emit into style attributes.
type Theme struct {
	Primary    template.CSS
	Secondary  template.CSS
	Accent     template.CSS
	Text       template.CSS
	Background template.CSS
}

var defaultTheme = Theme{
	Primary:    "#2563eb",
	Secondary:  "#7c3aed",
	Accent:     "#f59e0b",
	Text:       "#111827",
	Background: "#ffffff",
}

// NewTheme validates configured colors, keeping the built-in value for any
// that is not a CSS color.
func NewTheme(c config.ThemeColors) Theme {
	return Theme{
		Primary:    Color(c.Primary, defaultTheme.Primary),
		Secondary:  Color(c.Secondary, defaultTheme.Secondary),
		Accent:     Color(c.Accent, defaultTheme.Accent),
		Text:       Color(c.Text, defaultTheme.Text),
		Background: Color(c.Background, defaultTheme.Background),
	}
}

const alpha = `(?:0|1|0?\.\d+|\d{1,3}%)`

var colorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`),
	regexp.MustCompile(`^rgba?\(\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*(?:,\s*` + alpha + `\s*)?\)$`),
	regexp.MustCompile(`^hsla?\(\s*\d{1,3}(?:deg)?\s*,\s*\d{1,3}%\s*,\s*\d{1,3}%\s*(?:,\s*` + alpha + `\s*)?\)$`),
	regexp.MustCompile(`^[a-zA-Z]{3,20}$`),
}

func ValidColor(value string) bool {
	value = strings.TrimSpace(value)
	for _, re := range colorPatterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// Color returns value as CSS when it is a color, fallback otherwise.
func Color(value string, fallback template.CSS) template.CSS {
	if value = strings.TrimSpace(value); ValidColor(value) {
		return template.CSS(value)
	}
	return fallback
}
