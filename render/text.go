package render

import (
	"strings"
	"unicode"
)

const (
	// LongTextWords is the length from which content is laid out in two columns.
	LongTextWords = 250
	splitWindow   = 10
)

// SplitLongText returns text as one part, or as two when it has at least
// LongTextWords words. The cut lands after the sentence end (".", "!" or "?")
// closest to the middle within splitWindow words, or at the middle word when
// there is none. Whitespace inside each part is preserved.
func SplitLongText(text string) []string {
	spans := wordSpans(text)
	if len(spans) < LongTextWords {
		return []string{text}
	}

	mid := len(spans) / 2
	cut := mid
	for d := 0; d <= splitWindow; d++ {
		if i := mid - 1 - d; i >= 0 && endsSentence(text[spans[i][0]:spans[i][1]]) {
			cut = i + 1
			break
		}
		if i := mid - 1 + d; d > 0 && i < len(spans)-1 && endsSentence(text[spans[i][0]:spans[i][1]]) {
			cut = i + 1
			break
		}
	}

	at := spans[cut][0]
	return []string{strings.TrimSpace(text[:at]), strings.TrimSpace(text[at:])}
}

func endsSentence(word string) bool {
	word = strings.TrimRight(word, `"')]*_`)
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?")
}

// wordSpans returns the byte range of every whitespace separated word.
func wordSpans(text string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(text)})
	}
	return spans
}
