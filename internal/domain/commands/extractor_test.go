//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/iaccrawl/internal/domain/commands"
	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/iaccrawl/test/infrastructure/repositorydoubles"
)

func TestExtractorExtract(t *testing.T) {
	t.Parallel()

	meta := entitybuilders.NewRepositoryMetadataBuilder().
		WithFullName("acme/network").
		WithHeadCommit("c0ffeeacme/network").
		BuildMetadata()

	t.Run("should keep only files with the extension in tree order", func(t *testing.T) {
		t.Parallel()

		// given
		platform := &doubles.StubPlatformRepository{}
		platform.AddRepository(
			entitybuilders.NewRepositorySummaryBuilder().WithFullName("acme/network").BuildSummary(),
			"",
			map[string]string{
				"main.tf":            "resource \"aws_vpc\" \"a\" {}",
				"README.md":          "# readme",
				"modules/sg/main.tf": "resource \"aws_security_group\" \"b\" {}",
				"main.tf.json":       "{}",
			},
			"README.md", "main.tf", "main.tf.json", "modules/sg/main.tf",
		)
		platform.Trees["acme/network"] = append(platform.Trees["acme/network"],
			entities.TreeEntry{Path: "modules/vpc.tf", Type: "tree", SHA: "dir"})
		extractor := commands.NewExtractor(platform, 10, ".tf")

		// when
		files, err := extractor.Extract(context.Background(), meta)

		// then
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "main.tf", files[0].Path)
		assert.Equal(t, "modules/sg/main.tf", files[1].Path)
		assert.Equal(t, 2, platform.BlobCallCount())
	})

	t.Run("should stop at the file cap", func(t *testing.T) {
		t.Parallel()

		// given
		platform := &doubles.StubPlatformRepository{}
		platform.AddRepository(
			entitybuilders.NewRepositorySummaryBuilder().WithFullName("acme/network").BuildSummary(),
			"",
			map[string]string{"a.tf": "a", "b.tf": "b", "c.tf": "c"},
			"a.tf", "b.tf", "c.tf",
		)
		extractor := commands.NewExtractor(platform, 2, ".tf")

		// when
		files, err := extractor.Extract(context.Background(), meta)

		// then
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "b.tf", files[1].Path)
		assert.Equal(t, 2, platform.BlobCallCount())
	})

	t.Run("should fetch nothing for a truncated tree", func(t *testing.T) {
		t.Parallel()

		// given
		platform := &doubles.StubPlatformRepository{Truncated: map[string]bool{"acme/network": true}}
		extractor := commands.NewExtractor(platform, 10, ".tf")

		// when
		files, err := extractor.Extract(context.Background(), meta)

		// then
		require.NoError(t, err)
		assert.Empty(t, files)
		assert.Zero(t, platform.BlobCallCount())
	})

	t.Run("should skip blobs the platform cannot serve", func(t *testing.T) {
		t.Parallel()

		// given
		platform := &doubles.StubPlatformRepository{}
		platform.AddRepository(
			entitybuilders.NewRepositorySummaryBuilder().WithFullName("acme/network").BuildSummary(),
			"",
			map[string]string{"a.tf": "resource \"aws_vpc\" \"a\" {}", "empty.tf": ""},
			"a.tf", "empty.tf",
		)
		extractor := commands.NewExtractor(platform, 10, ".tf")

		// when
		files, err := extractor.Extract(context.Background(), meta)

		// then
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "a.tf", files[0].Path)
	})

	t.Run("should digest the raw bytes", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "\xef\xbb\xbfresource \"aws_vpc\" \"a\" {}"
		platform := &doubles.StubPlatformRepository{}
		platform.AddRepository(
			entitybuilders.NewRepositorySummaryBuilder().WithFullName("acme/network").BuildSummary(),
			"",
			map[string]string{"main.tf": raw},
			"main.tf",
		)
		extractor := commands.NewExtractor(platform, 10, ".tf")

		// when
		files, err := extractor.Extract(context.Background(), meta)

		// then
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, entities.Digest([]byte(raw)), files[0].SHA256)
		assert.Equal(t, "resource \"aws_vpc\" \"a\" {}", files[0].Content)
	})
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      []byte
		expected string
	}{
		{name: "should pass plain UTF-8 through", raw: []byte("variable \"name\" {}"), expected: "variable \"name\" {}"},
		{name: "should drop a UTF-8 byte order mark", raw: []byte("\xef\xbb\xbfok"), expected: "ok"},
		{name: "should decode UTF-16LE with a byte order mark", raw: []byte{0xff, 0xfe, 'h', 0, 'i', 0}, expected: "hi"},
		{name: "should replace invalid sequences", raw: []byte{'a', 0xff, 'b'}, expected: "a\uFFFDb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given / when
			text := commands.DecodeText(tt.raw)

			// then
			assert.Equal(t, tt.expected, text)
		})
	}
}
