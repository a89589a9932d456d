package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories"
)

// Export is the interface for the export command.
type Export interface {
	Execute(ctx context.Context, opts ExportOptions) error
}

// ExportOptions holds runtime options for a single export.
type ExportOptions struct {
	InputPath  string
	Format     string // "csv" or "parquet"
	OutputPath string
}

// ExportCommand converts a crawled NDJSON dataset into a derivative format.
type ExportCommand struct {
	reader          repositories.DatasetReaderRepository
	datasetRegistry *infraRepos.DatasetRegistry
}

// NewExportCommand creates a new ExportCommand.
func NewExportCommand(
	reader repositories.DatasetReaderRepository,
	datasetRegistry *infraRepos.DatasetRegistry,
) *ExportCommand {
	return &ExportCommand{reader: reader, datasetRegistry: datasetRegistry}
}

// Execute reads every record of opts.InputPath and writes them in opts.Format.
func (it *ExportCommand) Execute(ctx context.Context, opts ExportOptions) error {
	if opts.InputPath == "" || opts.OutputPath == "" {
		return errors.New("both an input and an output path are required")
	}
	if opts.InputPath == opts.OutputPath {
		return fmt.Errorf("refusing to overwrite the input %q", opts.InputPath)
	}

	writer, err := it.datasetRegistry.Get(opts.Format)
	if err != nil {
		return err
	}

	records, err := it.reader.Read(opts.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", opts.InputPath, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if writeErr := writer.Write(opts.OutputPath, records); writeErr != nil {
		return fmt.Errorf("failed to write %q: %w", opts.OutputPath, writeErr)
	}
	logger.Infof("Exported %d records to %s (%s)", len(records), opts.OutputPath, writer.Format())
	return nil
}
