package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// Extractor pulls the IaC source files of a repository at its head commit.
type Extractor struct {
	platform  repositories.PlatformRepository
	maxFiles  int
	extension string
}

// NewExtractor creates an Extractor keeping at most maxFiles files ending in extension.
func NewExtractor(platform repositories.PlatformRepository, maxFiles int, extension string) *Extractor {
	return &Extractor{platform: platform, maxFiles: maxFiles, extension: extension}
}

// Extract returns the selected files in tree order. A truncated or missing tree
// yields no files at all, so no blob is fetched for it.
func (it *Extractor) Extract(
	ctx context.Context,
	repo entities.RepositoryMetadata,
) ([]entities.SourceFile, error) {
	tree, found, err := it.platform.GetTree(ctx, repo.FullName, repo.HeadCommit)
	if errors.Is(err, repositories.ErrTreeTruncated) {
		logger.Infof("[extract] %s: tree is truncated, skipping repository", repo.FullName)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tree of %s: %w", repo.FullName, err)
	}
	if !found {
		return nil, nil
	}

	files := make([]entities.SourceFile, 0)
	for _, entry := range it.selectEntries(tree) {
		raw, ok, blobErr := it.platform.GetBlob(ctx, repo.FullName, entry.SHA)
		if blobErr != nil {
			return nil, fmt.Errorf("failed to fetch %s in %s: %w", entry.Path, repo.FullName, blobErr)
		}
		if !ok {
			continue
		}
		files = append(files, entities.NewSourceFile(entry.Path, raw, decodeText(raw)))
	}
	return files, nil
}

func (it *Extractor) selectEntries(tree []entities.TreeEntry) []entities.TreeEntry {
	selected := make([]entities.TreeEntry, 0)
	for _, entry := range tree {
		if len(selected) >= it.maxFiles {
			break
		}
		if entry.IsBlob() && strings.HasSuffix(entry.Path, it.extension) {
			selected = append(selected, entry)
		}
	}
	return selected
}

// decodeText reads UTF-8, honoring a UTF-8 or UTF-16 byte order mark. Invalid
// sequences become U+FFFD.
func decodeText(raw []byte) string {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(decoded)
}
