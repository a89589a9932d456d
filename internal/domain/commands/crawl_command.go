package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories"
	datasetRepo "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories/dataset"
)

// Crawl is the interface for the crawl command.
type Crawl interface {
	Execute(ctx context.Context, settings *entities.Settings) (*entities.CrawlReport, error)
}

// slot holds the outcome of one search hit; slots keep the search ranking order.
type slot struct {
	candidate  entities.Candidate
	unresolved bool
	errored    bool
}

// CrawlCommand orchestrates a full crawl:
// search -> probe -> per-candidate stages -> population scoring -> dataset.
type CrawlCommand struct {
	platformRegistry  *infraRepos.PlatformRegistry
	validatorRegistry *infraRepos.ValidatorRegistry
	datasetRegistry   *infraRepos.DatasetRegistry
	auditRegistry     *infraRepos.AuditRegistry
	clock             entities.Clock
}

// NewCrawlCommand creates a new CrawlCommand with the given registries.
func NewCrawlCommand(
	platformRegistry *infraRepos.PlatformRegistry,
	validatorRegistry *infraRepos.ValidatorRegistry,
	datasetRegistry *infraRepos.DatasetRegistry,
	auditRegistry *infraRepos.AuditRegistry,
	clock entities.Clock,
) *CrawlCommand {
	return &CrawlCommand{
		platformRegistry:  platformRegistry,
		validatorRegistry: validatorRegistry,
		datasetRegistry:   datasetRegistry,
		auditRegistry:     auditRegistry,
		clock:             clock,
	}
}

// Execute runs one crawl. It returns an error, and writes nothing, when the
// configuration is unusable, the platform quota aborts the run, or ctx is cancelled.
func (it *CrawlCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) (*entities.CrawlReport, error) {
	// The validator goes first: a missing tool must fail before any network call.
	validator, err := it.validatorRegistry.Get(settings.Validator)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize validator: %w", err)
	}
	platform, err := it.platformRegistry.Get(settings.Platform)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize platform: %w", err)
	}
	writer, err := it.datasetRegistry.Get(datasetRepo.FormatNDJSON)
	if err != nil {
		return nil, err
	}
	audit, err := it.auditRegistry.Get(settings.Audit)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit ledger: %w", err)
	}
	defer func() {
		if closeErr := audit.Close(); closeErr != nil {
			logger.Warnf("Failed to close audit ledger: %v", closeErr)
		}
	}()

	report := entities.NewCrawlReport(uuid.NewString())
	logger.Infof("Starting crawl %s (platform: %s, validator: %s, workers: %d)",
		report.RunID, platform.Name(), validator.Name(), settings.Pipeline.Workers)

	var summaries []entities.RepositorySummary
	searchErr := it.withRateLimitPolicy(ctx, settings.Pipeline, func() error {
		var callErr error
		summaries, callErr = platform.SearchRepositories(ctx, settings.Search.Keywords, settings.Search.Limit)
		return callErr
	})
	if searchErr != nil {
		return nil, fmt.Errorf("search failed: %w", searchErr)
	}
	report.Discovered = len(summaries)
	logger.Infof("Found %d candidate repositories", len(summaries))

	prober := NewProber(platform, it.clock)
	p := newPipeline(
		entities.NewKeywordFilter(settings.ForbiddenKeywords),
		settings.Thresholds,
		NewExtractor(platform, settings.Extraction.MaxFiles, settings.Extraction.Extension),
		validator,
		entities.NewStructuralFilter(settings.Structural.MinResources, settings.Structural.ProviderToken),
		entities.NewFeatureExtractor(settings.Structural.ProviderToken),
	)

	slots := make([]slot, len(summaries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Pipeline.Workers)
	for i, summary := range summaries {
		group.Go(func() error {
			return it.withRateLimitPolicy(groupCtx, settings.Pipeline, func() error {
				outcome, processErr := it.process(groupCtx, prober, p, summary)
				if processErr != nil {
					return processErr
				}
				slots[i] = outcome
				if outcome.candidate.Rejected() {
					it.record(groupCtx, audit, report.RunID, outcome.candidate)
				}
				return nil
			})
		})
	}
	// Barrier: scoring needs every per-candidate stage to have finished.
	if waitErr := group.Wait(); waitErr != nil {
		return nil, fmt.Errorf("crawl aborted: %w", waitErr)
	}

	candidates := make([]entities.Candidate, 0, len(slots))
	for _, s := range slots {
		switch {
		case s.unresolved:
			report.Unresolved++
		case s.errored:
			report.Errored++
		default:
			candidates = append(candidates, s.candidate)
		}
	}

	scored := scorePopulation(candidates, settings.Thresholds.OutlierThreshold)

	crawledAt := it.clock()
	records := make([]entities.OutputRecord, 0, len(scored))
	for i, c := range scored {
		report.Tally(c)
		if c.Trace.Accepted {
			records = append(records, entities.NewOutputRecord(c, platform.Name(), crawledAt))
		}
		if !candidates[i].Rejected() {
			it.record(ctx, audit, report.RunID, c)
		}
	}

	if writeErr := writer.Write(settings.Output.Path, records); writeErr != nil {
		return nil, fmt.Errorf("failed to write dataset: %w", writeErr)
	}
	report.OutputPath = settings.Output.Path

	logger.Infof("Crawl complete: %d discovered, %d accepted, %d rejected, %d unresolved, %d errors",
		report.Discovered, report.Accepted, report.TotalRejected(), report.Unresolved, report.Errored)
	return report, nil
}

// process runs one search hit up to, but excluding, the behavior stage.
// Transport failures mark the slot as errored; quota and cancellation errors
// are returned so they stop the run.
func (it *CrawlCommand) process(
	ctx context.Context,
	prober *Prober,
	p *pipeline,
	summary entities.RepositorySummary,
) (slot, error) {
	meta, found, err := prober.Probe(ctx, summary)
	if err != nil {
		return it.skip(ctx, summary.FullName, err)
	}
	if !found {
		return slot{unresolved: true}, nil
	}

	candidate, err := p.Run(ctx, entities.NewCandidate(meta))
	if err != nil {
		return it.skip(ctx, summary.FullName, err)
	}
	return slot{candidate: candidate}, nil
}

func (it *CrawlCommand) skip(ctx context.Context, name string, err error) (slot, error) {
	if _, limited := repositories.AsRateLimit(err); limited {
		return slot{}, err
	}
	if ctx.Err() != nil {
		return slot{}, ctx.Err()
	}
	logger.Warnf("Skipping %s: %v", name, err)
	return slot{errored: true}, nil
}

// withRateLimitPolicy runs fn and, under the "wait" policy, sleeps out a quota
// error and tries again. Waits beyond maxWait, and every quota error under
// "abort", are returned as is.
func (it *CrawlCommand) withRateLimitPolicy(
	ctx context.Context,
	policy entities.PipelineSettings,
	fn func() error,
) error {
	for {
		err := fn()
		rateErr, limited := repositories.AsRateLimit(err)
		if !limited || policy.OnRateLimit != entities.RateLimitWait {
			return err
		}
		if rateErr.RetryAfter > policy.MaxRateLimitWait {
			return fmt.Errorf("wait of %s exceeds %s: %w", rateErr.RetryAfter, policy.MaxRateLimitWait, err)
		}

		logger.Warnf("Rate limited, waiting %s before retrying", rateErr.RetryAfter)
		timer := time.NewTimer(rateErr.RetryAfter)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (it *CrawlCommand) record(
	ctx context.Context,
	audit repositories.AuditRepository,
	runID string,
	candidate entities.Candidate,
) {
	if err := audit.Record(ctx, runID, candidate, it.clock()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warnf("Failed to audit %s: %v", candidate.Repository.FullName, err)
	}
}
