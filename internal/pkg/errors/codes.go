package errors

import (
	"errors"
	"fmt"
)

// Record validation error codes.
const (
	CodeEmptyField     = "EMPTY_FIELD"
	CodeMissingField   = "MISSING_FIELD"
	CodePrefixMismatch = "PREFIX_MISMATCH"
	CodeInvalidURL     = "INVALID_URL"
	CodeUnknownType    = "UNKNOWN_TYPE"
)

// Run-level error codes.
const (
	CodeNoEntries       = "NO_ENTRIES"
	CodeMalformedSource = "MALFORMED_SOURCE"
	CodeInvalidIdspace  = "INVALID_IDSPACE"
	CodeInvalidDocument = "INVALID_DOCUMENT"
)

// I/O error codes.
const (
	CodeSourceUnreadable = "SOURCE_UNREADABLE"
	CodeSinkWriteFailed  = "SINK_WRITE_FAILED"
)

// Sentinel errors matched by errors.Is against any AppError with the
// corresponding code.
var (
	ErrEmptyField      = errors.New("empty field")
	ErrMissingField    = errors.New("missing field")
	ErrPrefixMismatch  = errors.New("identifier prefix mismatch")
	ErrInvalidURL      = errors.New("invalid url")
	ErrUnknownType     = errors.New("unknown rule type")
	ErrNoEntries       = errors.New("no entries")
	ErrMalformedSource = errors.New("malformed source")
	ErrInvalidDocument = errors.New("invalid document")
)

var sentinels = map[string]error{
	CodeEmptyField:      ErrEmptyField,
	CodeMissingField:    ErrMissingField,
	CodePrefixMismatch:  ErrPrefixMismatch,
	CodeInvalidURL:      ErrInvalidURL,
	CodeUnknownType:     ErrUnknownType,
	CodeNoEntries:       ErrNoEntries,
	CodeMalformedSource: ErrMalformedSource,
	CodeInvalidDocument: ErrInvalidDocument,
}

// Convenience constructors using predefined codes.

// EmptyField reports a tracked field whose trimmed content is empty.
func EmptyField(record int, field string) *AppError {
	return New(CodeEmptyField, fmt.Sprintf("empty <%s> for <purl> %d", field, record)).
		WithRecord(record).
		WithParams(map[string]interface{}{"field": field})
}

// MissingField reports a record that never captured field.
func MissingField(record int, field string) *AppError {
	return New(CodeMissingField, fmt.Sprintf("no <%s> for <purl> %d", field, record)).
		WithRecord(record).
		WithParams(map[string]interface{}{"field": field})
}

// PrefixMismatch reports an identifier outside the expected base path.
func PrefixMismatch(record int, id, basePath string) *AppError {
	return New(CodePrefixMismatch,
		fmt.Sprintf("in <purl> %d the <id> %q does not begin with base_url %q", record, id, basePath)).
		WithRecord(record).
		WithParams(map[string]interface{}{"id": id, "base_url": basePath})
}

// InvalidURL reports a target that is not an absolute HTTP(S) or FTP URL.
func InvalidURL(record int, url string) *AppError {
	return New(CodeInvalidURL,
		fmt.Sprintf("in <purl> %d the <url> %q is not an absolute HTTP or FTP URL", record, url)).
		WithRecord(record).
		WithParams(map[string]interface{}{"url": url})
}

// UnknownType reports a rule type other than "302" or "partial".
func UnknownType(record int, value string) *AppError {
	return New(CodeUnknownType, fmt.Sprintf("unknown type %q for <purl> %d", value, record)).
		WithRecord(record).
		WithParams(map[string]interface{}{"type": value})
}

// NoEntries reports a source that produced no rules.
func NoEntries() *AppError {
	return New(CodeNoEntries, "no entries to migrate")
}

// MalformedSource wraps a markup or encoding error from the XML decoder.
func MalformedSource(err error) *AppError {
	return Wrap(err, CodeMalformedSource, "source document is not well-formed XML")
}

// InvalidIdspace reports an unusable project identifier.
func InvalidIdspace(idspace string) *AppError {
	return New(CodeInvalidIdspace, fmt.Sprintf("invalid idspace %q", idspace))
}

// InvalidDocument reports a generated configuration that fails verification.
func InvalidDocument(message string) *AppError {
	return New(CodeInvalidDocument, message)
}
