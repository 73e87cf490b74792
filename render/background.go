package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/rpupo63/site-sections-backend/models"
	"github.com/rpupo63/site-sections-backend/section"
)

const (
	BackgroundSolid    = "solid"
	BackgroundGradient = "gradient"
	BackgroundImage    = "image"

	defaultDirection = "135deg"
)

type Background struct {
	Type      string
	Color     string
	Gradient  models.Gradient
	ImageURL  string
	Overlay   float64
	TextColor string
}

// BackgroundOf reads the styling columns of a section row.
func BackgroundOf(s models.Section) (Background, error) {
	b := Background{
		Type:      s.BackgroundType,
		Color:     s.BackgroundColor,
		ImageURL:  s.ImageURL,
		Overlay:   s.OverlayOpacity,
		TextColor: s.TextColor,
	}
	if len(s.Gradient) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(s.Gradient, &b.Gradient); err != nil {
		return b, fmt.Errorf("decode gradient: %w", err)
	}
	return b, nil
}

var directionPattern = regexp.MustCompile(`^(?:to (?:top|bottom|left|right)(?: (?:top|bottom|left|right))?|-?\d{1,3}deg)$`)

// BackgroundStyle builds the inline style of a section. Every color goes
// through Color, so invalid values fall back to the theme.
func BackgroundStyle(b Background, theme Theme, baseURL string) template.CSS {
	var decls []string

	switch strings.ToLower(strings.TrimSpace(b.Type)) {
	case BackgroundGradient:
		direction := strings.ToLower(strings.TrimSpace(b.Gradient.Direction))
		if !directionPattern.MatchString(direction) {
			direction = defaultDirection
		}
		decls = append(decls, fmt.Sprintf("background: linear-gradient(%s, %s, %s)",
			direction,
			Color(b.Gradient.From, theme.Primary),
			Color(b.Gradient.To, theme.Secondary),
		))
	case BackgroundImage:
		if url, ok := cssURL(section.AssetURL(b.ImageURL, baseURL)); ok {
			overlay := overlayOpacity(b.Overlay)
			decls = append(decls,
				fmt.Sprintf("background-image: linear-gradient(rgba(0, 0, 0, %.2f), rgba(0, 0, 0, %.2f)), url(\"%s\")", overlay, overlay, url),
				"background-size: cover",
				"background-position: center",
			)
			break
		}
		decls = append(decls, "background-color: "+string(Color(b.Color, theme.Background)))
	default:
		decls = append(decls, "background-color: "+string(Color(b.Color, theme.Background)))
	}

	decls = append(decls, "color: "+string(Color(b.TextColor, theme.Text)))
	return template.CSS(strings.Join(decls, "; ") + ";")
}

// overlayOpacity accepts a 0..1 fraction or a 0..100 percentage.
func overlayOpacity(v float64) float64 {
	if v > 1 {
		v /= 100
	}
	return min(max(v, 0), 1)
}

// cssURL accepts http(s) and site relative URLs that cannot break out of a
// quoted url() token.
func cssURL(u string) (string, bool) {
	if u == "" || strings.ContainsAny(u, "\"'()\\<>") {
		return "", false
	}
	for _, r := range u {
		if r < 0x20 || r == 0x7f || r == ' ' {
			return "", false
		}
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(u, "/") {
		return u, true
	}
	return "", false
}
