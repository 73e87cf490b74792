package section

import (
	"encoding/json"
	"strings"

	"github.com/rpupo63/site-sections-backend/errs"
)

const (
	PositionLeft  = "left"
	PositionRight = "right"
)

type Block struct {
	ContentType string `json:"contentType"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Image       string `json:"image"`
	Position    string `json:"position"`
	Alt         string `json:"alt"`
	ButtonText  string `json:"buttonText"`
	ButtonURL   string `json:"buttonUrl"`
}

// Valid requires at least one of contentType, title, text or image.
func (b Block) Valid() bool {
	return strings.TrimSpace(b.ContentType) != "" ||
		strings.TrimSpace(b.Title) != "" ||
		strings.TrimSpace(b.Text) != "" ||
		strings.TrimSpace(b.Image) != ""
}

func NormalizePosition(position string) string {
	if strings.EqualFold(strings.TrimSpace(position), PositionRight) {
		return PositionRight
	}
	return PositionLeft
}

type Blocks []Block

func (Blocks) Kind() Kind { return KindTextImage }

// ParseBlocks decodes the JSON block array, falling back to legacy
// Title|Text|Image|Position records.
func ParseBlocks(content string) (items Blocks, migrated bool, err error) {
	if strings.TrimSpace(content) == "" {
		return nil, false, nil
	}

	if isJSONDocument(content) {
		decoded, jsonErr := decodeJSONList[Block](content)
		if jsonErr != nil {
			return nil, false, errs.NewMalformedContentError(string(KindTextImage), jsonErr)
		}
		for _, b := range decoded {
			if b.Valid() {
				b.Position = NormalizePosition(b.Position)
				items = append(items, b)
			}
		}
		return items, false, nil
	}

	for _, rec := range splitRecords(content) {
		parts := splitFields(rec)
		b := Block{
			Title:    field(parts, 0),
			Text:     field(parts, 1),
			Image:    field(parts, 2),
			Position: NormalizePosition(field(parts, 3)),
		}
		if b.Valid() {
			items = append(items, b)
		}
	}
	if len(items) > 0 {
		return items, true, nil
	}
	return nil, false, errs.NewMalformedContentError(string(KindTextImage), nil)
}

func SerializeBlocks(items Blocks) (string, error) {
	if items == nil {
		items = Blocks{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
