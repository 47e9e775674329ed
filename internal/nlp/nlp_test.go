package nlp

import (
	"reflect"
	"strings"
	"testing"

	"github.com/doctrove/doctrove/internal/classify"
)

func TestExtractMetadataDates(t *testing.T) {
	text := "Issued 12/31/2024, due 01-15-2025, archived 3.4.99. Again: 12/31/2024."
	md, err := ExtractMetadata(text, classify.TypeGeneral)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	want := []string{"12/31/2024", "01-15-2025", "3.4.99", "12/31/2024"}
	if !reflect.DeepEqual(md.Dates, want) {
		t.Errorf("Dates = %v, want %v (in order, duplicates kept)", md.Dates, want)
	}
}

func TestExtractMetadataKeyTerms(t *testing.T) {
	// "storage" x3, "vector" x2, "index" x2; short and numeric tokens dropped.
	text := "Storage storage STORAGE vector vector index index the a 12345 999"
	md, err := ExtractMetadata(text, classify.TypeGeneral)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	if len(md.KeyTerms) == 0 || md.KeyTerms[0] != "storage" {
		t.Fatalf("KeyTerms = %v, want storage first", md.KeyTerms)
	}
	// Ties (vector/index both x2) break lexicographically.
	if !reflect.DeepEqual(md.KeyTerms[:3], []string{"storage", "index", "vector"}) {
		t.Errorf("KeyTerms[:3] = %v, want [storage index vector]", md.KeyTerms[:3])
	}
	for _, term := range md.KeyTerms {
		if len(term) <= 3 {
			t.Errorf("short token %q should have been dropped", term)
		}
	}
}

func TestExtractMetadataKeyTermsCapped(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo", "lima",
	}
	text := strings.Join(words, " ")
	md, err := ExtractMetadata(text, classify.TypeGeneral)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}
	if len(md.KeyTerms) != 10 {
		t.Errorf("len(KeyTerms) = %d, want 10", len(md.KeyTerms))
	}
}

func TestExtractEntities(t *testing.T) {
	entities, err := extractEntities("John Smith flew to London. John Smith returned.")
	if err != nil {
		t.Fatalf("extractEntities: %v", err)
	}

	for _, e := range entities {
		if !entityTypes[e.Type] {
			t.Errorf("entity %q has type %q outside the allowed set", e.Text, e.Type)
		}
	}

	// Detection order preserved, duplicates kept.
	want := []Entity{
		{Text: "John Smith", Type: "PERSON"},
		{Text: "London", Type: "GPE"},
		{Text: "John Smith", Type: "PERSON"},
	}
	if !reflect.DeepEqual(entities, want) {
		t.Errorf("entities = %v, want %v", entities, want)
	}
}

func TestExtractMetadataEmptyText(t *testing.T) {
	md, err := ExtractMetadata("", classify.TypeGeneral)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}
	if md.Entities == nil || md.Dates == nil || md.KeyTerms == nil || md.DomainSpecific == nil {
		t.Error("metadata fields must be non-nil so they serialize as empty collections")
	}
	if len(md.Entities) != 0 || len(md.Dates) != 0 || len(md.KeyTerms) != 0 {
		t.Errorf("expected empty metadata, got %+v", md)
	}
}

func TestInvoiceExtraction(t *testing.T) {
	text := "Invoice #123 Total Amount Due: $450.00"
	md, err := ExtractMetadata(text, classify.TypeInvoice)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	if md.DomainSpecific["invoice_number"] != "123" {
		t.Errorf("invoice_number = %q, want 123", md.DomainSpecific["invoice_number"])
	}
	if md.DomainSpecific["amount"] != "450.00" {
		t.Errorf("amount = %q, want 450.00", md.DomainSpecific["amount"])
	}
}

func TestInvoiceExtractionFirstMatchOnly(t *testing.T) {
	text := "Invoice #A-1 and also invoice #B-2, total: $10.00 then total: $99.99"
	got := extractInvoiceData(text)
	if got["invoice_number"] != "A-1" {
		t.Errorf("invoice_number = %q, want A-1 (first match only)", got["invoice_number"])
	}
	if got["amount"] != "10.00" {
		t.Errorf("amount = %q, want 10.00 (first match only)", got["amount"])
	}
}

func TestMedicalExtraction(t *testing.T) {
	text := "Patient diagnosis: hypertension. Prescribed medication: lisinopril."
	md, err := ExtractMetadata(text, classify.TypeMedical)
	if err != nil {
		t.Fatalf("ExtractMetadata: %v", err)
	}

	if md.DomainSpecific["diagnosis"] != "hypertension" {
		t.Errorf("diagnosis = %q, want hypertension", md.DomainSpecific["diagnosis"])
	}
	if md.DomainSpecific["medication"] != "lisinopril" {
		t.Errorf("medication = %q, want lisinopril", md.DomainSpecific["medication"])
	}
}

func TestContractExtraction(t *testing.T) {
	text := "This contract has an Effective Date: January 5, 2024 made between Acme Corp and Beta LLC for services."
	got := extractContractData(text)

	if got["effective_date"] != "January 5, 2024" {
		t.Errorf("effective_date = %q, want January 5, 2024", got["effective_date"])
	}
	if got["party1"] != "Acme Corp" {
		t.Errorf("party1 = %q, want Acme Corp", got["party1"])
	}
	if got["party2"] != "Beta LLC for services" {
		t.Errorf("party2 = %q", got["party2"])
	}
}

func TestLegalExtraction(t *testing.T) {
	text := "In the Superior Court, Case No: 2024-CV-0042 was heard."
	got := extractLegalData(text)

	if got["case_number"] != "2024-CV-0042" {
		t.Errorf("case_number = %q, want 2024-CV-0042", got["case_number"])
	}
	if got["court"] != "Superior Court" {
		t.Errorf("court = %q, want Superior Court", got["court"])
	}
}

func TestDomainSpecificEmptyForOtherTypes(t *testing.T) {
	text := "Invoice #123 total: $5.00"
	for _, docType := range []classify.DocType{classify.TypeGeneral, classify.TypeResume, classify.TypeFinancial} {
		md, err := ExtractMetadata(text, docType)
		if err != nil {
			t.Fatalf("ExtractMetadata(%s): %v", docType, err)
		}
		if len(md.DomainSpecific) != 0 {
			t.Errorf("DomainSpecific for %s = %v, want empty", docType, md.DomainSpecific)
		}
	}
}

func TestSummarize(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third one too. Fourth is dropped."
	got, err := Summarize(text)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	want := "First sentence here. Second sentence follows. Third one too."
	if got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}

func TestSummarizeShortText(t *testing.T) {
	got, err := Summarize("Only one sentence.")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "Only one sentence." {
		t.Errorf("Summarize = %q", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, text := range []string{"", "   \n\t "} {
		got, err := Summarize(text)
		if err != nil {
			t.Fatalf("Summarize(%q): %v", text, err)
		}
		if got != NoTextFallback {
			t.Errorf("Summarize(%q) = %q, want fallback", text, got)
		}
	}
}

func TestRunePrefix(t *testing.T) {
	if got := runePrefix("héllo wörld", 4); got != "héll" {
		t.Errorf("runePrefix = %q, want héll", got)
	}
	if got := runePrefix("short", 100); got != "short" {
		t.Errorf("runePrefix = %q, want short", got)
	}
}
