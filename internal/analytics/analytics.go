// Package analytics computes read-only aggregates over the document
// registry. Everything is recomputed on each call; nothing is cached.
package analytics

import (
	"github.com/doctrove/doctrove/internal/registry"
)

const maxKeywords = 20

// Distribution is a label/value histogram with labels in first-seen order.
type Distribution struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// KeywordFrequency is the top keywords across all documents with their
// occurrence counts.
type KeywordFrequency struct {
	Keywords    []string `json:"keywords"`
	Frequencies []int    `json:"frequencies"`
}

// Stats is the combined collection summary.
type Stats struct {
	TotalDocuments int            `json:"total_documents"`
	DocumentTypes  map[string]int `json:"document_types"`
	EntityTypes    map[string]int `json:"entity_types"`
}

// orderedCounter counts occurrences while remembering the order keys were
// first seen, so distributions are stable across calls.
type orderedCounter struct {
	order  []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *orderedCounter) distribution() Distribution {
	dist := Distribution{Labels: []string{}, Values: []int{}}
	for _, key := range c.order {
		dist.Labels = append(dist.Labels, key)
		dist.Values = append(dist.Values, c.counts[key])
	}
	return dist
}

// DocumentTypes returns the count of documents per type.
func DocumentTypes(store *registry.Store) Distribution {
	counter := newOrderedCounter()
	for _, doc := range store.List() {
		counter.add(string(doc.Type))
	}
	return counter.distribution()
}

// EntityDistribution returns the count of entities per entity category,
// flattened across all documents.
func EntityDistribution(store *registry.Store) Distribution {
	counter := newOrderedCounter()
	for _, doc := range store.List() {
		for _, entity := range doc.Metadata.Entities {
			counter.add(entity.Type)
		}
	}
	return counter.distribution()
}

// Keywords returns the top key terms across all documents by occurrence
// count. Count ties keep first-seen order.
func Keywords(store *registry.Store) KeywordFrequency {
	counter := newOrderedCounter()
	for _, doc := range store.List() {
		for _, term := range doc.Metadata.KeyTerms {
			counter.add(term)
		}
	}

	// Stable selection sort by count keeps first-seen order within ties.
	keys := append([]string(nil), counter.order...)
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && counter.counts[keys[j]] > counter.counts[keys[j-1]]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	if len(keys) > maxKeywords {
		keys = keys[:maxKeywords]
	}

	kf := KeywordFrequency{Keywords: []string{}, Frequencies: []int{}}
	for _, key := range keys {
		kf.Keywords = append(kf.Keywords, key)
		kf.Frequencies = append(kf.Frequencies, counter.counts[key])
	}
	return kf
}

// DocumentStats returns the combined collection summary.
func DocumentStats(store *registry.Store) Stats {
	docs := store.List()

	stats := Stats{
		TotalDocuments: len(docs),
		DocumentTypes:  map[string]int{},
		EntityTypes:    map[string]int{},
	}
	for _, doc := range docs {
		stats.DocumentTypes[string(doc.Type)]++
		for _, entity := range doc.Metadata.Entities {
			stats.EntityTypes[entity.Type]++
		}
	}
	return stats
}
