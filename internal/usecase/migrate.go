// Package usecase provides the application use cases.
//
// UseCases are shared by the single-file CLI and the batch command.
//
// Import Path: purl-migrate.io/migrator/internal/usecase
package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"purl-migrate.io/migrator/internal/domain"
	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
	"purl-migrate.io/migrator/internal/pkg/logger"
	"purl-migrate.io/migrator/internal/provider"
	"purl-migrate.io/migrator/internal/service"
)

// MigrateInput represents the input for one migration run.
type MigrateInput struct {
	// Idspace is the project identifier, e.g. "OBI"; case is normalized.
	Idspace string
	// SourceName labels the source in logs (file path or "stdin").
	SourceName string
	Source     io.Reader
	// Sink receives the rendered configuration in a single Write, and only
	// after every record has validated.
	Sink io.Writer
}

// MigrateOutput summarizes a successful run.
type MigrateOutput struct {
	RunID   string `json:"run_id"`
	Records int    `json:"records"`
	Exact   int    `json:"exact"`
	Prefix  int    `json:"prefix"`
	Bytes   int    `json:"bytes"`
}

// MigrateUseCase drives one streaming migration:
// source → event source → accumulator/validator → rule set → composer → sink.
type MigrateUseCase struct {
	source   provider.EventSource
	composer *service.Composer
	settings domain.Settings
}

// NewMigrateUseCase creates a new MigrateUseCase.
func NewMigrateUseCase(
	source provider.EventSource,
	composer *service.Composer,
	settings domain.Settings,
) *MigrateUseCase {
	return &MigrateUseCase{
		source:   source,
		composer: composer,
		settings: settings,
	}
}

// Execute runs the migration. The source is read exactly once; nothing is
// written to the sink unless the whole document validated.
func (uc *MigrateUseCase) Execute(ctx context.Context, input MigrateInput) (*MigrateOutput, error) {
	idspace := strings.TrimSpace(input.Idspace)
	if idspace == "" || strings.ContainsAny(idspace, "/ \t\n") {
		return nil, apperrors.InvalidIdspace(input.Idspace)
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	meta := domain.NewMetadata(idspace, uc.settings)
	log := logger.With(
		zap.String("run_id", runID.String()),
		zap.String("idspace", meta.IdspaceUpper),
		zap.String("source", input.SourceName),
	)
	start := time.Now()
	log.Info("Migration started", zap.String("base_path", meta.BasePath))

	rules := &domain.RuleSet{}
	acc := service.NewRecordAccumulator(service.NewRecordValidator(meta.BasePath), rules).
		WithLogger(log)

	if err := uc.source.Stream(ctx, input.Source, acc); err != nil {
		log.Error("Migration aborted",
			zap.Int("records", acc.Records()),
			zap.Error(err),
		)
		return nil, err
	}

	out, err := uc.composer.Compose(rules, meta)
	if err != nil {
		log.Error("Migration aborted", zap.Int("records", acc.Records()), zap.Error(err))
		return nil, err
	}

	n, err := input.Sink.Write(out)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSinkWriteFailed, "write configuration")
	}

	output := &MigrateOutput{
		RunID:   runID.String(),
		Records: acc.Records(),
		Exact:   len(rules.Exact),
		Prefix:  len(rules.Prefix),
		Bytes:   n,
	}
	log.Info("Migration completed",
		zap.Int("records", output.Records),
		zap.Int("exact", output.Exact),
		zap.Int("prefix", output.Prefix),
		zap.Duration("elapsed", time.Since(start)),
	)
	return output, nil
}
