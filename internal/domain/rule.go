// Package domain provides domain models for purl-migrate.
//
// Parser-specific types never leak past the provider package; everything the
// services and use cases exchange is defined here.
//
// Import Path: purl-migrate.io/migrator/internal/domain
package domain

// RuleKind classifies how the resolver matches a rule.
type RuleKind int

const (
	// RuleKindExact redirects only an exact identifier match (legacy type "302").
	RuleKindExact RuleKind = iota + 1
	// RuleKindPrefix redirects every identifier sharing the prefix (legacy type "partial").
	RuleKindPrefix
)

// Legacy type codes.
const (
	TypeCodeExact  = "302"
	TypeCodePrefix = "partial"
)

// Label returns the YAML key used for the rule kind.
func (k RuleKind) Label() string {
	switch k {
	case RuleKindExact:
		return "exact"
	case RuleKindPrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (k RuleKind) String() string {
	return k.Label()
}

// KindForTypeCode maps a legacy type code to a rule kind.
func KindForTypeCode(code string) (RuleKind, bool) {
	switch code {
	case TypeCodeExact:
		return RuleKindExact, true
	case TypeCodePrefix:
		return RuleKindPrefix, true
	default:
		return 0, false
	}
}

// RawRecord holds the trimmed field contents captured for one <purl> record,
// keyed by FieldID, FieldType and FieldURL.
type RawRecord map[string]string

// Get returns the captured value of field.
func (r RawRecord) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Rule is a validated redirect rule.
type Rule struct {
	// ID is the record identifier with the base path removed.
	ID string `json:"id"`
	// URL is the absolute replacement target.
	URL  string   `json:"url"`
	Kind RuleKind `json:"kind"`
}

// RuleSet accumulates validated rules for one migration run.
// Each list keeps encounter order.
type RuleSet struct {
	Exact  []Rule
	Prefix []Rule
}

// Collect appends rule to the list for its kind.
func (s *RuleSet) Collect(rule Rule) {
	if rule.Kind == RuleKindExact {
		s.Exact = append(s.Exact, rule)
		return
	}
	s.Prefix = append(s.Prefix, rule)
}

// Len returns the total number of collected rules.
func (s *RuleSet) Len() int {
	return len(s.Exact) + len(s.Prefix)
}
