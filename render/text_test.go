package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words builds n words with a sentence end every `every` words.
func words(n, every int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
		if every > 0 && (i+1)%every == 0 {
			parts[i] += "."
		}
	}
	return strings.Join(parts, " ")
}

func TestSplitLongTextThreshold(t *testing.T) {
	assert.Len(t, SplitLongText(words(249, 7)), 1, "249 words never split")

	text := words(260, 0)
	parts := SplitLongText(text)
	require.Len(t, parts, 2)
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Equal(t, strings.Fields(text), append(strings.Fields(parts[0]), strings.Fields(parts[1])...))
}

func TestSplitLongTextPrefersSentenceEnd(t *testing.T) {
	parts := SplitLongText(words(260, 7))
	require.Len(t, parts, 2)

	// The middle is after word 130; the closest sentence end is w132.
	assert.True(t, strings.HasSuffix(parts[0], "w132."), parts[0][len(parts[0])-10:])
	assert.True(t, strings.HasPrefix(parts[1], "w133 "))
}

func TestSplitLongTextWithoutSentenceEndCutsAtMiddle(t *testing.T) {
	parts := SplitLongText(words(260, 0))
	require.Len(t, parts, 2)
	assert.Len(t, strings.Fields(parts[0]), 130)
}

func TestSplitLongTextKeepsParagraphs(t *testing.T) {
	text := words(145, 0) + ".\n\n" + words(150, 0)
	parts := SplitLongText(text)
	require.Len(t, parts, 2)
	assert.Equal(t, text, parts[0]+"\n\n"+parts[1])
}
