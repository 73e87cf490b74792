package section

import (
	"encoding/json"
	"strings"

	"github.com/rpupo63/site-sections-backend/errs"
)

type Banner struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func (Banner) Kind() Kind { return KindBanner }

// ParseBanner reads Title|Subtitle. Anything after the first pipe belongs to
// the subtitle.
func ParseBanner(content string) Banner {
	title, subtitle, _ := strings.Cut(strings.TrimSpace(content), fieldSeparator)
	return Banner{Title: strings.TrimSpace(title), Subtitle: strings.TrimSpace(subtitle)}
}

func SerializeBanner(b Banner) string {
	if b.Subtitle == "" {
		return b.Title
	}
	return joinFields(b.Title, b.Subtitle)
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQs []FAQ

func (FAQs) Kind() Kind { return KindFAQ }

func ParseFAQs(content string) FAQs {
	var out FAQs
	for _, rec := range splitRecords(content) {
		question, answer, _ := strings.Cut(rec, fieldSeparator)
		item := FAQ{Question: strings.TrimSpace(question), Answer: strings.TrimSpace(answer)}
		if item.Question != "" && item.Answer != "" {
			out = append(out, item)
		}
	}
	return out
}

func SerializeFAQs(items FAQs) string {
	records := make([]string, 0, len(items))
	for _, item := range items {
		records = append(records, joinFields(item.Question, item.Answer))
	}
	return joinRecords(records)
}

type Slide struct {
	Image      string `json:"image"`
	Title      string `json:"title"`
	Caption    string `json:"caption"`
	ButtonText string `json:"buttonText"`
	ButtonURL  string `json:"buttonUrl"`
}

type Slides []Slide

func (Slides) Kind() Kind { return KindSlider }

// ParseSlides decodes the JSON slide array, falling back to Image|Caption records.
func ParseSlides(content string) (Slides, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	var out Slides
	if isJSONDocument(content) {
		decoded, err := decodeJSONList[Slide](content)
		if err != nil {
			return nil, errs.NewMalformedContentError(string(KindSlider), err)
		}
		for _, s := range decoded {
			if strings.TrimSpace(s.Image) != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}

	for _, rec := range splitRecords(content) {
		parts := splitFields(rec)
		s := Slide{Image: field(parts, 0), Caption: field(parts, 1)}
		if s.Image != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func SerializeSlides(items Slides) (string, error) {
	if items == nil {
		items = Slides{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Content is a free text body, rendered as markdown.
type Content struct {
	Body string `json:"body"`
}

func (Content) Kind() Kind { return KindContent }

// CustomHTML is operator supplied markup; it is sanitized on output.
type CustomHTML struct {
	HTML string `json:"html"`
}

func (CustomHTML) Kind() Kind { return KindCustomHTML }
