package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// stage is one per-candidate step. It returns an annotated copy of the candidate;
// an error means the step could not be evaluated at all (transport, quota, cancel).
type stage struct {
	name string
	run  func(ctx context.Context, candidate entities.Candidate) (entities.Candidate, error)
}

// pipeline chains the per-candidate stages, stopping at the first rejection.
// The behavior stage is not part of it: it needs the whole population.
type pipeline struct {
	keywords   entities.KeywordFilter
	thresholds entities.Thresholds
	extractor  *Extractor
	validator  repositories.ValidatorRepository
	structural entities.StructuralFilter
	features   entities.FeatureExtractor
	stages     []stage
}

func newPipeline(
	keywords entities.KeywordFilter,
	thresholds entities.Thresholds,
	extractor *Extractor,
	validator repositories.ValidatorRepository,
	structural entities.StructuralFilter,
	features entities.FeatureExtractor,
) *pipeline {
	p := &pipeline{
		keywords:   keywords,
		thresholds: thresholds,
		extractor:  extractor,
		validator:  validator,
		structural: structural,
		features:   features,
	}
	p.stages = []stage{
		{name: "keywords", run: p.checkKeywords},
		{name: "maturity", run: p.checkMaturity},
		{name: "extract", run: p.extractFiles},
		{name: "syntax", run: p.checkSyntax},
		{name: "structural", run: p.checkStructure},
		{name: "features", run: p.extractFeatures},
	}
	return p
}

// Run threads the candidate through every stage in order.
func (p *pipeline) Run(ctx context.Context, candidate entities.Candidate) (entities.Candidate, error) {
	for _, s := range p.stages {
		if candidate.Rejected() {
			break
		}
		next, err := s.run(ctx, candidate)
		if err != nil {
			return candidate, err
		}
		candidate = next
		logger.Debugf("[%s] %s: rejected=%t", s.name, candidate.Repository.FullName, candidate.Rejected())
	}
	if candidate.Rejected() {
		logger.Infof("[pipeline] %s rejected: %s", candidate.Repository.FullName, candidate.Trace.RejectReason)
	}
	return candidate, nil
}

func (p *pipeline) checkKeywords(_ context.Context, c entities.Candidate) (entities.Candidate, error) {
	if p.keywords.Excludes(c.Repository) {
		c.Trace.KeywordExclusionPass = false
		return c.Reject(entities.RejectKeywordExclusion), nil
	}
	c.Trace.KeywordExclusionPass = true
	return c, nil
}

func (p *pipeline) checkMaturity(_ context.Context, c entities.Candidate) (entities.Candidate, error) {
	c.Trace.MaturityPass = p.thresholds.Admits(c.Repository)
	if !c.Trace.MaturityPass {
		return c.Reject(entities.RejectMaturityFailed), nil
	}
	return c, nil
}

func (p *pipeline) extractFiles(ctx context.Context, c entities.Candidate) (entities.Candidate, error) {
	files, err := p.extractor.Extract(ctx, c.Repository)
	if err != nil {
		return c, err
	}
	if len(files) == 0 {
		return c.Reject(entities.RejectNoFiles), nil
	}
	return c.WithFiles(files), nil
}

func (p *pipeline) checkSyntax(ctx context.Context, c entities.Candidate) (entities.Candidate, error) {
	verdict, err := p.validator.Validate(ctx, c.Files)
	if err != nil {
		return c, err
	}
	c.Trace.SyntaxPass = verdict.Passed
	if !verdict.Passed {
		logger.Debugf("[syntax] %s failed at %s: %s", c.Repository.FullName, verdict.Stage, verdict.Detail)
		return c.Reject(entities.RejectValidationFailed), nil
	}
	return c, nil
}

func (p *pipeline) checkStructure(_ context.Context, c entities.Candidate) (entities.Candidate, error) {
	c.Trace.StructuralPass = p.structural.Check(c.Files)
	if !c.Trace.StructuralPass {
		return c.Reject(entities.RejectStructuralFailed), nil
	}
	return c, nil
}

func (p *pipeline) extractFeatures(_ context.Context, c entities.Candidate) (entities.Candidate, error) {
	return c.WithFeatures(p.features.Extract(c.Files)), nil
}

// scorePopulation is the behavior stage. The reference distribution is taken
// from a snapshot of every candidate still standing, then each of them is
// scored against it. Rejected candidates pass through untouched.
func scorePopulation(candidates []entities.Candidate, threshold float64) []entities.Candidate {
	snapshot := make([]entities.FeatureVector, 0, len(candidates))
	for _, c := range candidates {
		if !c.Rejected() {
			snapshot = append(snapshot, c.Features)
		}
	}
	distribution := entities.EstimateReferenceDistribution(snapshot)

	scored := make([]entities.Candidate, len(candidates))
	for i, c := range candidates {
		if c.Rejected() {
			scored[i] = c
			continue
		}
		c.Trace.BehaviorScore = distribution.Score(c.Features)
		c.Trace.BehaviorPass = c.Trace.BehaviorScore <= threshold
		if c.Trace.BehaviorPass {
			c = c.Accept()
		} else {
			logger.Infof("[behavior] %s rejected: score %.3f above %.3f",
				c.Repository.FullName, c.Trace.BehaviorScore, threshold)
			c = c.Reject(entities.RejectBehaviorOutlier)
		}
		scored[i] = c
	}
	return scored
}
