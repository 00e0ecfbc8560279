package service

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"purl-migrate.io/migrator/internal/domain"
	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

// VerifyReport summarizes a configuration that passed verification.
type VerifyReport struct {
	Idspace string
	Entries int
	Exact   int
	Prefix  int
}

// Verifier re-checks a generated (and possibly hand-edited) configuration.
type Verifier struct {
	settings domain.Settings
}

// NewVerifier creates a new Verifier.
func NewVerifier(settings domain.Settings) *Verifier {
	return &Verifier{settings: settings}
}

// Verify decodes r and checks that the configuration still describes a
// resolvable rule list:
//   - idspace is set and base_url is derived from it
//   - there is at least one entry
//   - every entry has one of exact/prefix and an absolute replacement
//   - exact entries come before prefix entries
//   - prefix identifiers never get longer further down the list
func (v *Verifier) Verify(r io.Reader) (*VerifyReport, error) {
	var doc domain.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, apperrors.InvalidDocument("document is empty")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidDocument, "decode configuration")
	}

	if strings.TrimSpace(doc.Idspace) == "" {
		return nil, apperrors.InvalidDocument("idspace is missing")
	}
	if want := v.settings.BasePath(doc.Idspace); doc.BaseURL != want {
		return nil, apperrors.InvalidDocument(
			fmt.Sprintf("base_url %q does not match idspace %s (want %q)", doc.BaseURL, doc.Idspace, want))
	}
	if len(doc.Entries) == 0 {
		return nil, apperrors.NoEntries()
	}

	report := &VerifyReport{Idspace: doc.Idspace, Entries: len(doc.Entries)}
	lastPrefixLen := -1
	for i, e := range doc.Entries {
		n := i + 1
		switch e.Kind {
		case domain.RuleKindExact:
			if report.Prefix > 0 {
				return nil, apperrors.InvalidDocument(
					fmt.Sprintf("entry %d (line %d): exact entry after prefix entries", n, e.Line))
			}
			report.Exact++
		case domain.RuleKindPrefix:
			l := utf8.RuneCountInString(e.ID)
			if lastPrefixLen >= 0 && l > lastPrefixLen {
				return nil, apperrors.InvalidDocument(
					fmt.Sprintf("entry %d (line %d): prefix %q is longer than the prefix before it", n, e.Line, e.ID))
			}
			lastPrefixLen = l
			report.Prefix++
		default:
			return nil, apperrors.InvalidDocument(
				fmt.Sprintf("entry %d (line %d): needs an exact or prefix key, has %v", n, e.Line, e.Keys))
		}
		if !IsAbsoluteURL(e.Replacement) {
			return nil, apperrors.InvalidDocument(
				fmt.Sprintf("entry %d (line %d): replacement %q is not an absolute HTTP or FTP URL", n, e.Line, e.Replacement))
		}
	}
	return report, nil
}
