//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/iaccrawl/internal/domain/commands"
	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// StubCrawlCommand is a stub implementation of commands.Crawl.
type StubCrawlCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.CrawlReport
	LastSettings     *entities.Settings
}

var _ commands.Crawl = (*StubCrawlCommand)(nil)

func (s *StubCrawlCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) (*entities.CrawlReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Report != nil {
		return s.Report, nil
	}
	return entities.NewCrawlReport("stub-run"), nil
}
