//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/iaccrawl/internal/domain/commands"
)

// StubExportCommand is a stub implementation of commands.Export.
type StubExportCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastOpts         commands.ExportOptions
}

var _ commands.Export = (*StubExportCommand)(nil)

func (s *StubExportCommand) Execute(_ context.Context, opts commands.ExportOptions) error {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.ExecuteErr
}
