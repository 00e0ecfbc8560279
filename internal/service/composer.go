package service

import (
	"bytes"
	"fmt"
	"slices"
	"text/template"
	"unicode/utf8"

	"purl-migrate.io/migrator/internal/domain"
	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

const configTemplate = `# PURL configuration for http://{{.Meta.Domain}}{{.Meta.BasePath}}

idspace: {{.Meta.IdspaceUpper}}
base_url: {{.Meta.BasePath}}

products:
{{range .Meta.Products}}- {{.}}: TODO
{{end}}
term_browser: {{.Meta.TermBrowser}}
example_terms:
- TODO

entries:
{{range .Rules}}- {{.Kind.Label}}: {{.ID}}
  replacement: {{.URL}}

{{end}}`

// Composer renders a rule set into the resolver's YAML configuration.
type Composer struct {
	tmpl *template.Template
}

// NewComposer creates a new Composer.
func NewComposer() *Composer {
	return &Composer{
		tmpl: template.Must(template.New("purl-config").Parse(configTemplate)),
	}
}

// OrderRules returns exact rules in encounter order followed by prefix rules
// ordered by descending identifier length. Equal lengths keep encounter
// order, so a longer prefix always shadows a shorter one.
// Length counts characters, not bytes.
func OrderRules(set *domain.RuleSet) []domain.Rule {
	ordered := make([]domain.Rule, 0, set.Len())
	ordered = append(ordered, set.Exact...)

	prefix := slices.Clone(set.Prefix)
	slices.SortStableFunc(prefix, func(a, b domain.Rule) int {
		return utf8.RuneCountInString(b.ID) - utf8.RuneCountInString(a.ID)
	})
	return append(ordered, prefix...)
}

// Compose orders the rules and renders the configuration text.
// Returns NO_ENTRIES if set is empty.
func (c *Composer) Compose(set *domain.RuleSet, meta domain.Metadata) ([]byte, error) {
	rules := OrderRules(set)
	if len(rules) == 0 {
		return nil, apperrors.NoEntries()
	}

	var buf bytes.Buffer
	err := c.tmpl.Execute(&buf, struct {
		Meta  domain.Metadata
		Rules []domain.Rule
	}{Meta: meta, Rules: rules})
	if err != nil {
		return nil, fmt.Errorf("render configuration: %w", err)
	}
	return buf.Bytes(), nil
}
