//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SourceFileBuilder assembles Terraform files block by block.
type SourceFileBuilder struct {
	*testkit.BaseBuilder
	path   string
	blocks []string
}

// NewSourceFileBuilder creates a builder for an empty main.tf.
func NewSourceFileBuilder() *SourceFileBuilder {
	return &SourceFileBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "main.tf",
	}
}

// WithPath sets the path relative to the repository root.
func (b *SourceFileBuilder) WithPath(path string) *SourceFileBuilder {
	b.path = path
	return b
}

// WithResources appends count resources of the given type, e.g. "aws_s3_bucket".
func (b *SourceFileBuilder) WithResources(resourceType string, count int) *SourceFileBuilder {
	for i := range count {
		b.blocks = append(b.blocks, fmt.Sprintf("resource \"%s\" \"r%d\" {\n}\n", resourceType, len(b.blocks)+i))
	}
	return b
}

// WithModule appends a module block calling source.
func (b *SourceFileBuilder) WithModule(name, source string) *SourceFileBuilder {
	b.blocks = append(b.blocks, fmt.Sprintf("module \"%s\" {\n  source = \"%s\"\n}\n", name, source))
	return b
}

// WithVariables appends count variable blocks.
func (b *SourceFileBuilder) WithVariables(count int) *SourceFileBuilder {
	for i := range count {
		b.blocks = append(b.blocks, fmt.Sprintf("variable \"v%d_%d\" {\n}\n", len(b.blocks), i))
	}
	return b
}

// WithRaw appends raw text.
func (b *SourceFileBuilder) WithRaw(text string) *SourceFileBuilder {
	b.blocks = append(b.blocks, text)
	return b
}

// Content returns the text assembled so far.
func (b *SourceFileBuilder) Content() string {
	return strings.Join(b.blocks, "\n")
}

// Build creates the source file (satisfies testkit.Builder interface).
func (b *SourceFileBuilder) Build() interface{} {
	return b.BuildSourceFile()
}

// BuildSourceFile creates the source file with a concrete return type.
func (b *SourceFileBuilder) BuildSourceFile() entities.SourceFile {
	content := b.Content()
	return entities.NewSourceFile(b.path, []byte(content), content)
}

// Reset clears the builder state, allowing it to be reused.
func (b *SourceFileBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "main.tf"
	b.blocks = nil
	return b
}

// Clone creates a deep copy of the SourceFileBuilder.
func (b *SourceFileBuilder) Clone() testkit.Builder {
	return &SourceFileBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		blocks:      append([]string(nil), b.blocks...),
	}
}
