package repositories

import (
	"context"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// ValidatorRepository abstracts an external IaC validation tool.
type ValidatorRepository interface {
	// Name returns the tool identifier (e.g. "terraform").
	Name() string

	// Validate materializes the files in a private scratch directory and reduces
	// the tool's verdict to pass/fail. Tool failures and timeouts are verdicts,
	// not errors; an error is returned only when ctx itself was cancelled or the
	// scratch directory could not be prepared.
	Validate(ctx context.Context, files []entities.SourceFile) (entities.ValidationVerdict, error)
}
