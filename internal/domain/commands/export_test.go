package commands

// DecodeText exports decodeText for testing.
var DecodeText = decodeText //nolint:gochecknoglobals // test export

// ScorePopulation exports scorePopulation for testing.
var ScorePopulation = scorePopulation //nolint:gochecknoglobals // test export

// Pipeline exports pipeline for testing.
type Pipeline = pipeline

// NewPipeline exports newPipeline for testing.
var NewPipeline = newPipeline //nolint:gochecknoglobals // test export

// Stages exports the names of the per-candidate stages in execution order.
func (p *pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.name)
	}
	return names
}
