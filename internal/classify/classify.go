// Package classify assigns coarse document-type labels using ordered
// keyword rules. Classification is first-match: when several rule patterns
// match the same text, the earliest rule in the list wins, so rule order is
// part of the behavior and must not be rearranged.
package classify

import "regexp"

// DocType is a coarse document classification label.
type DocType string

const (
	TypeInvoice   DocType = "Invoice"
	TypeContract  DocType = "Contract"
	TypeResume    DocType = "Resume"
	TypeMedical   DocType = "Medical"
	TypeLegal     DocType = "Legal"
	TypeFinancial DocType = "Financial"
	TypeGeneral   DocType = "General"
)

// rule pairs a case-insensitive pattern with the label it assigns.
type rule struct {
	pattern *regexp.Regexp
	label   DocType
}

// typeRules are evaluated in order; the first match decides the type.
var typeRules = []rule{
	{regexp.MustCompile(`(?i)invoice|payment|amount due|bill|total amount|tax`), TypeInvoice},
	{regexp.MustCompile(`(?i)contract|agreement|terms|parties|obligations|hereby agree`), TypeContract},
	{regexp.MustCompile(`(?i)resume|cv|experience|skills|education|employment|objective`), TypeResume},
	{regexp.MustCompile(`(?i)patient|diagnosis|treatment|medical|doctor|hospital|health`), TypeMedical},
	{regexp.MustCompile(`(?i)court|plaintiff|defendant|legal|law|attorney|judge|case`), TypeLegal},
	{regexp.MustCompile(`(?i)financial|statement|balance sheet|profit|loss|assets|liabilities`), TypeFinancial},
}

// Document returns the document type for the given text, or TypeGeneral
// when no rule matches.
func Document(text string) DocType {
	for _, r := range typeRules {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}
	return TypeGeneral
}

// Domain is a content-domain label, assigned independently of the document
// type above; the two are never reconciled.
type Domain string

const (
	DomainMedical   Domain = "Medical"
	DomainLegal     Domain = "Legal"
	DomainFinancial Domain = "Financial"
	DomainTechnical Domain = "Technical"
	DomainAcademic  Domain = "Academic"
	DomainGeneral   Domain = "General"
)

type domainRule struct {
	pattern *regexp.Regexp
	label   Domain
}

var domainRules = []domainRule{
	{regexp.MustCompile(`(?i)patient|diagnosis|prescription|symptoms|treatment plan`), DomainMedical},
	{regexp.MustCompile(`(?i)court|legal|law|attorney|clause|contract|agreement`), DomainLegal},
	{regexp.MustCompile(`(?i)financial|invoice|payment|transaction|tax|budget`), DomainFinancial},
	{regexp.MustCompile(`(?i)technical|specification|software|hardware|system|configuration`), DomainTechnical},
	{regexp.MustCompile(`(?i)research|study|analysis|conclusion|findings|methodology`), DomainAcademic},
}

// IdentifyDomain returns the content domain for the given text, or
// DomainGeneral when no rule matches.
func IdentifyDomain(text string) Domain {
	for _, r := range domainRules {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}
	return DomainGeneral
}
