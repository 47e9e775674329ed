package nlp

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

const (
	// summaryTextCap bounds how much text is sentence-segmented.
	summaryTextCap = 5000
	// summarySentences is the number of leading sentences kept.
	summarySentences = 3
)

// NoTextFallback is returned when a document yields no usable sentences.
const NoTextFallback = "No text content available for summarization."

// Summarize returns the first few sentences of the text joined by single
// spaces. The selection is purely positional; there is no scoring.
func Summarize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return NoTextFallback, nil
	}

	doc, err := prose.NewDocument(runePrefix(text, summaryTextCap),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return "", err
	}

	sentences := doc.Sentences()
	if len(sentences) == 0 {
		return NoTextFallback, nil
	}

	n := summarySentences
	if len(sentences) < n {
		n = len(sentences)
	}

	parts := make([]string, 0, n)
	for _, s := range sentences[:n] {
		parts = append(parts, strings.TrimSpace(s.Text))
	}
	return strings.Join(parts, " "), nil
}
