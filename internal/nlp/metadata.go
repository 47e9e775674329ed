// Package nlp derives structured metadata and summaries from extracted
// document text.
package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/doctrove/doctrove/internal/classify"
)

const (
	// entityTextCap bounds how much text is fed to named-entity recognition.
	entityTextCap = 10000
	// maxKeyTerms is how many top-frequency terms are retained.
	maxKeyTerms = 10
)

// Entity is a named span in text with a coarse category.
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Metadata is the structured extraction result for one document.
type Metadata struct {
	Entities       []Entity          `json:"entities"`
	Dates          []string          `json:"dates"`
	KeyTerms       []string          `json:"key_terms"`
	DomainSpecific map[string]string `json:"domain_specific"`
}

// entityTypes is the set of entity categories worth keeping.
var entityTypes = map[string]bool{
	"PERSON":   true,
	"ORG":      true,
	"GPE":      true,
	"MONEY":    true,
	"DATE":     true,
	"CARDINAL": true,
}

// datePattern matches numeric dates like 12/31/2024, 1-2-99 or 03.04.2025.
var datePattern = regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`)

// ExtractMetadata derives entities, dates, key terms and type-specific
// fields from the given text. docType decides which domain extractor runs,
// so classification must happen before this call.
func ExtractMetadata(text string, docType classify.DocType) (Metadata, error) {
	md := Metadata{
		Entities:       []Entity{},
		Dates:          []string{},
		KeyTerms:       []string{},
		DomainSpecific: map[string]string{},
	}

	entities, err := extractEntities(runePrefix(text, entityTextCap))
	if err != nil {
		return md, fmt.Errorf("extracting entities: %w", err)
	}
	md.Entities = entities

	// Dates are scanned over the full text, duplicates included.
	if dates := datePattern.FindAllString(text, -1); dates != nil {
		md.Dates = dates
	}

	terms, err := extractKeyTerms(text)
	if err != nil {
		return md, fmt.Errorf("extracting key terms: %w", err)
	}
	md.KeyTerms = terms

	switch docType {
	case classify.TypeInvoice:
		md.DomainSpecific = extractInvoiceData(text)
	case classify.TypeContract:
		md.DomainSpecific = extractContractData(text)
	case classify.TypeMedical:
		md.DomainSpecific = extractMedicalData(text)
	case classify.TypeLegal:
		md.DomainSpecific = extractLegalData(text)
	}

	return md, nil
}

// extractEntities runs NER and keeps entities whose category is recognized,
// preserving detection order. Duplicates are not collapsed.
func extractEntities(text string) ([]Entity, error) {
	entities := []Entity{}
	if strings.TrimSpace(text) == "" {
		return entities, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	for _, ent := range doc.Entities() {
		if entityTypes[ent.Label] {
			entities = append(entities, Entity{Text: ent.Text, Type: ent.Label})
		}
	}
	return entities, nil
}

// extractKeyTerms tokenizes the full text to lowercase words, drops short
// and purely numeric tokens, and returns the ten most frequent terms.
// Frequency ties break lexicographically so the result is deterministic.
func extractKeyTerms(text string) ([]string, error) {
	terms := []string{}
	if strings.TrimSpace(text) == "" {
		return terms, nil
	}

	doc, err := prose.NewDocument(strings.ToLower(text),
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}

	freq := map[string]int{}
	for _, tok := range doc.Tokens() {
		word := tok.Text
		if len(word) <= 3 || isNumeric(word) {
			continue
		}
		freq[word]++
	}

	ranked := make([]string, 0, len(freq))
	for term := range freq {
		ranked = append(ranked, term)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > maxKeyTerms {
		ranked = ranked[:maxKeyTerms]
	}
	return append(terms, ranked...), nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// runePrefix returns at most n runes of s without splitting a multi-byte
// character.
func runePrefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
