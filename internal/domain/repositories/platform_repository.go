package repositories

import (
	"context"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// PlatformRepository abstracts a hosted source-code platform (GitHub, etc.).
// It is read-only: the crawler never writes to the platform.
//
// Lookups that can miss return (zero, false, nil) when the object does not exist.
// Quota exhaustion is reported as *RateLimitError; any other error is a transport
// failure scoped to the single call.
type PlatformRepository interface {
	// Name returns the platform identifier (e.g. "github").
	Name() string

	// SearchRepositories returns up to limit IaC repositories matching the keywords,
	// in the platform's ranking order.
	SearchRepositories(ctx context.Context, keywords []string, limit int) ([]entities.RepositorySummary, error)

	// GetHeadCommit resolves the commit hash the branch points at.
	GetHeadCommit(ctx context.Context, fullName, branch string) (string, bool, error)

	// GetReadme returns the decoded readme text of the default branch.
	GetReadme(ctx context.Context, fullName string) (string, bool, error)

	// GetTree lists every entry reachable from the commit. It fails with
	// ErrTreeTruncated when the platform cannot enumerate the whole tree.
	GetTree(ctx context.Context, fullName, commit string) ([]entities.TreeEntry, bool, error)

	// GetBlob returns the raw bytes of a blob. Empty blobs are reported as absent.
	GetBlob(ctx context.Context, fullName, blobSHA string) ([]byte, bool, error)
}
