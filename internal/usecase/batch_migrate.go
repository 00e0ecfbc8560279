package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"purl-migrate.io/migrator/internal/infrastructure"
	"purl-migrate.io/migrator/internal/pkg/logger"
	"purl-migrate.io/migrator/internal/pkg/worker"
)

// BatchMigrateInput names a directory of PURL XML files and the directory
// that receives one configuration per file.
type BatchMigrateInput struct {
	SourceDir string
	OutputDir string
}

// BatchResult is the outcome of one file in a batch.
type BatchResult struct {
	Source  string
	Target  string
	Idspace string
	Output  *MigrateOutput
	Err     error
}

// BatchMigrateUseCase runs independent migrations concurrently on a pool.
type BatchMigrateUseCase struct {
	migrate *MigrateUseCase
	pool    *worker.Pool
	store   *infrastructure.FileStore
}

// NewBatchMigrateUseCase creates a new BatchMigrateUseCase.
func NewBatchMigrateUseCase(
	migrate *MigrateUseCase,
	pool *worker.Pool,
	store *infrastructure.FileStore,
) *BatchMigrateUseCase {
	return &BatchMigrateUseCase{
		migrate: migrate,
		pool:    pool,
		store:   store,
	}
}

// IdspaceFromPath derives the idspace from a source file name: "go.xml" → "go".
func IdspaceFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Execute migrates every source in the directory. A failing file does not
// stop the others; the returned error joins every failure. Results keep the
// sorted source order.
func (uc *BatchMigrateUseCase) Execute(ctx context.Context, input BatchMigrateInput) ([]BatchResult, error) {
	sources, err := uc.store.ListSources(input.SourceDir)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		idspace := IdspaceFromPath(src)
		results[i] = BatchResult{
			Source:  src,
			Idspace: idspace,
			Target:  filepath.Join(input.OutputDir, strings.ToLower(idspace)+".yml"),
		}

		wg.Add(1)
		err := uc.pool.Submit(ctx, func(ctx context.Context) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i].Output, results[i].Err = uc.migrateFile(ctx, results[i])
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Source, r.Err))
		}
	}
	logger.Info("Batch completed",
		zap.String("source_dir", input.SourceDir),
		zap.Int("files", len(results)),
		zap.Int("failed", len(errs)),
	)
	return results, errors.Join(errs...)
}

func (uc *BatchMigrateUseCase) migrateFile(ctx context.Context, r BatchResult) (*MigrateOutput, error) {
	f, err := uc.store.Open(r.Source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	out, err := uc.migrate.Execute(ctx, MigrateInput{
		Idspace:    r.Idspace,
		SourceName: r.Source,
		Source:     f,
		Sink:       &buf,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.store.Write(r.Target, buf.Bytes()); err != nil {
		return nil, err
	}
	return out, nil
}
