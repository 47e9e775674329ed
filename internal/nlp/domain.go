package nlp

import (
	"regexp"
	"strings"
)

// Domain extractors pull type-specific fields with single-shot patterns:
// only the first match counts, later occurrences are ignored.

var (
	invoiceNumberPattern = regexp.MustCompile(`(?i)(?:invoice|bill|receipt)(?:\s+(?:no|num|number|#))?\s*[:#]?\s*([A-Z0-9\-]+)`)
	amountPattern        = regexp.MustCompile(`(?i)(?:total|amount|sum)(?:\s+due)?\s*:?\s*(?:\$|EUR|£)?\s*([0-9,]+\.[0-9]{2})`)

	effectiveDatePattern = regexp.MustCompile(`(?i)(?:effective|commencement|start)\s+date\s*:?\s*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`)
	partiesPattern       = regexp.MustCompile(`(?i)between\s+([A-Za-z\s,]+)(?:\s+and\s+|\s*,\s*)([A-Za-z\s,]+)`)

	diagnosisPattern  = regexp.MustCompile(`(?i)diagnosis\s*:?\s*([A-Za-z\s,]+)`)
	medicationPattern = regexp.MustCompile(`(?i)(?:prescribed\s+medication|prescribed|medication|medicine)\s*:?\s*([A-Za-z0-9\s,]+)`)

	caseNumberPattern = regexp.MustCompile(`(?i)(?:case|docket|file)\s+(?:no|num|number|#)\s*[:#]?\s*([A-Z0-9\-]+)`)
	courtPattern      = regexp.MustCompile(`(?i)(?:in the|before the)\s+([A-Za-z\s]+Court)`)
)

func extractInvoiceData(text string) map[string]string {
	result := map[string]string{}

	if m := invoiceNumberPattern.FindStringSubmatch(text); m != nil {
		result["invoice_number"] = m[1]
	}
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		result["amount"] = m[1]
	}
	return result
}

func extractContractData(text string) map[string]string {
	result := map[string]string{}

	if m := effectiveDatePattern.FindStringSubmatch(text); m != nil {
		result["effective_date"] = m[1]
	}
	if m := partiesPattern.FindStringSubmatch(text); m != nil {
		result["party1"] = strings.TrimSpace(m[1])
		result["party2"] = strings.TrimSpace(m[2])
	}
	return result
}

func extractMedicalData(text string) map[string]string {
	result := map[string]string{}

	if m := diagnosisPattern.FindStringSubmatch(text); m != nil {
		result["diagnosis"] = strings.TrimSpace(m[1])
	}
	if m := medicationPattern.FindStringSubmatch(text); m != nil {
		result["medication"] = strings.TrimSpace(m[1])
	}
	return result
}

func extractLegalData(text string) map[string]string {
	result := map[string]string{}

	if m := caseNumberPattern.FindStringSubmatch(text); m != nil {
		result["case_number"] = m[1]
	}
	if m := courtPattern.FindStringSubmatch(text); m != nil {
		result["court"] = strings.TrimSpace(m[1])
	}
	return result
}
