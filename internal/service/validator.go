package service

import (
	"regexp"

	"purl-migrate.io/migrator/internal/domain"
	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

// absoluteURL accepts http, https and ftp URLs with a non-empty remainder.
var absoluteURL = regexp.MustCompile(`^(https?|ftp)://.+`)

// IsAbsoluteURL reports whether s is an acceptable replacement target.
func IsAbsoluteURL(s string) bool {
	return absoluteURL.MatchString(s)
}

// RecordValidator checks raw records and classifies them into rules.
type RecordValidator struct {
	basePath string
	idPrefix *regexp.Regexp
}

// NewRecordValidator creates a validator for identifiers under basePath.
// The base path is matched case-insensitively.
func NewRecordValidator(basePath string) *RecordValidator {
	return &RecordValidator{
		basePath: basePath,
		idPrefix: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(basePath)),
	}
}

// StripBasePath removes one leading occurrence of the base path from id.
func (v *RecordValidator) StripBasePath(id string) (string, bool) {
	loc := v.idPrefix.FindStringIndex(id)
	if loc == nil {
		return id, false
	}
	return id[loc[1]:], true
}

// Validate checks, in order:
// 1. an identifier was captured
// 2. the identifier starts with the base path (stripped on success)
// 3. a URL was captured
// 4. the URL is an absolute HTTP(S) or FTP URL
// 5. a type was captured
// 6. the type is "302" or "partial"
// index is the 1-based record position used in error messages.
func (v *RecordValidator) Validate(raw domain.RawRecord, index int) (domain.Rule, error) {
	id, ok := raw.Get(domain.FieldID)
	if !ok {
		return domain.Rule{}, apperrors.MissingField(index, domain.FieldID)
	}
	stripped, ok := v.StripBasePath(id)
	if !ok {
		return domain.Rule{}, apperrors.PrefixMismatch(index, id, v.basePath)
	}

	url, ok := raw.Get(domain.FieldURL)
	if !ok {
		return domain.Rule{}, apperrors.MissingField(index, domain.FieldURL)
	}
	if !IsAbsoluteURL(url) {
		return domain.Rule{}, apperrors.InvalidURL(index, url)
	}

	typeCode, ok := raw.Get(domain.FieldType)
	if !ok {
		return domain.Rule{}, apperrors.MissingField(index, domain.FieldType)
	}
	kind, ok := domain.KindForTypeCode(typeCode)
	if !ok {
		return domain.Rule{}, apperrors.UnknownType(index, typeCode)
	}

	return domain.Rule{ID: stripped, URL: url, Kind: kind}, nil
}
