// Package service holds the migration building blocks: record accumulation,
// validation, output composition and document verification.
//
// Import Path: purl-migrate.io/migrator/internal/service
package service

import (
	"strings"

	"go.uber.org/zap"

	"purl-migrate.io/migrator/internal/domain"
	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

// RecordAccumulator collects the fields of one <purl> record at a time from
// parser events, validates each completed record and collects the rule.
type RecordAccumulator struct {
	validator *RecordValidator
	rules     *domain.RuleSet
	log       *zap.Logger

	record  domain.RawRecord
	content strings.Builder
	count   int
}

// NewRecordAccumulator creates an accumulator feeding rules into set.
func NewRecordAccumulator(validator *RecordValidator, set *domain.RuleSet) *RecordAccumulator {
	return &RecordAccumulator{
		validator: validator,
		rules:     set,
		log:       zap.NewNop(),
		record:    domain.RawRecord{},
	}
}

// WithLogger sets the logger used for per-record debug output.
func (a *RecordAccumulator) WithLogger(l *zap.Logger) *RecordAccumulator {
	if l != nil {
		a.log = l
	}
	return a
}

var _ domain.EventHandler = (*RecordAccumulator)(nil)

// Records returns the number of <purl> records seen so far.
func (a *RecordAccumulator) Records() int {
	return a.count
}

// StartElement always clears the content buffer. A <purl> start also begins
// a fresh record; whatever was captured before is dropped unvalidated.
func (a *RecordAccumulator) StartElement(name string) error {
	a.content.Reset()
	if name == domain.RecordElement {
		a.count++
		a.record = domain.RawRecord{}
	}
	return nil
}

// Characters appends text to the content buffer.
func (a *RecordAccumulator) Characters(text string) error {
	a.content.WriteString(text)
	return nil
}

// EndElement stores tracked fields and completes records.
// A repeated field inside one record overwrites the earlier value.
func (a *RecordAccumulator) EndElement(name string) error {
	switch {
	case domain.IsTrackedField(name):
		value := strings.TrimSpace(a.content.String())
		if value == "" {
			return apperrors.EmptyField(a.count, name)
		}
		a.record[name] = value
	case name == domain.RecordElement:
		rule, err := a.validator.Validate(a.record, a.count)
		if err != nil {
			return err
		}
		a.rules.Collect(rule)
		a.log.Debug("Collected rule",
			zap.Int("record", a.count),
			zap.Stringer("kind", rule.Kind),
			zap.String("id", rule.ID),
			zap.String("url", rule.URL),
		)
	}
	return nil
}
