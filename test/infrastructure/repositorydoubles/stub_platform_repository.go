//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. They are hand-written, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// StubPlatformRepository implements repositories.PlatformRepository over in-memory
// fixtures and records every call. It is safe for concurrent workers.
type StubPlatformRepository struct {
	mu sync.Mutex

	// --- SearchRepositories ---
	Summaries []entities.RepositorySummary
	SearchErr error
	// SearchErrs are returned, in order, before SearchErr and Summaries
	SearchErrs  []error
	SearchCalls int

	// --- GetHeadCommit ---
	Heads     map[string]string // full name -> commit
	HeadErrs  map[string]error
	HeadCalls []string

	// --- GetReadme ---
	Readmes    map[string]string // full name -> text; missing means no readme
	ReadmeErrs map[string]error

	// --- GetTree ---
	Trees     map[string][]entities.TreeEntry // full name -> entries
	Truncated map[string]bool
	TreeErrs  map[string]error
	TreeCalls []string

	// --- GetBlob ---
	Blobs     map[string][]byte // blob sha -> bytes
	BlobErrs  map[string]error
	BlobCalls []string
}

var _ repositories.PlatformRepository = (*StubPlatformRepository)(nil)

func (p *StubPlatformRepository) Name() string { return "github" }

func (p *StubPlatformRepository) SearchRepositories(
	_ context.Context,
	_ []string,
	limit int,
) ([]entities.RepositorySummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SearchCalls++
	if len(p.SearchErrs) > 0 {
		err := p.SearchErrs[0]
		p.SearchErrs = p.SearchErrs[1:]
		return nil, err
	}
	if p.SearchErr != nil {
		return nil, p.SearchErr
	}
	if limit < len(p.Summaries) {
		return p.Summaries[:limit], nil
	}
	return p.Summaries, nil
}

func (p *StubPlatformRepository) GetHeadCommit(
	_ context.Context,
	fullName, _ string,
) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.HeadCalls = append(p.HeadCalls, fullName)
	if err := p.HeadErrs[fullName]; err != nil {
		return "", false, err
	}
	head, ok := p.Heads[fullName]
	return head, ok, nil
}

func (p *StubPlatformRepository) GetReadme(_ context.Context, fullName string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ReadmeErrs[fullName]; err != nil {
		return "", false, err
	}
	readme, ok := p.Readmes[fullName]
	return readme, ok, nil
}

func (p *StubPlatformRepository) GetTree(
	_ context.Context,
	fullName, _ string,
) ([]entities.TreeEntry, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TreeCalls = append(p.TreeCalls, fullName)
	if err := p.TreeErrs[fullName]; err != nil {
		return nil, false, err
	}
	if p.Truncated[fullName] {
		return nil, false, repositories.ErrTreeTruncated
	}
	tree, ok := p.Trees[fullName]
	return tree, ok, nil
}

func (p *StubPlatformRepository) GetBlob(
	_ context.Context,
	_ string,
	blobSHA string,
) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.BlobCalls = append(p.BlobCalls, blobSHA)
	if err := p.BlobErrs[blobSHA]; err != nil {
		return nil, false, err
	}
	blob, ok := p.Blobs[blobSHA]
	if len(blob) == 0 {
		return nil, false, nil
	}
	return blob, ok, nil
}

// TreeCallCount returns how many trees were requested so far.
func (p *StubPlatformRepository) TreeCallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.TreeCalls)
}

// BlobCallCount returns how many blobs were requested so far.
func (p *StubPlatformRepository) BlobCallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.BlobCalls)
}

// AddRepository registers a resolvable repository with a readme and its files,
// one blob per file keyed by "<full name>:<path>".
func (p *StubPlatformRepository) AddRepository(
	summary entities.RepositorySummary,
	readme string,
	files map[string]string,
	paths ...string,
) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Heads == nil {
		p.Heads = make(map[string]string)
		p.Readmes = make(map[string]string)
		p.Trees = make(map[string][]entities.TreeEntry)
		p.Blobs = make(map[string][]byte)
	}

	p.Summaries = append(p.Summaries, summary)
	p.Heads[summary.FullName] = "c0ffee" + summary.FullName
	p.Readmes[summary.FullName] = readme

	tree := make([]entities.TreeEntry, 0, len(paths))
	for _, path := range paths {
		sha := summary.FullName + ":" + path
		tree = append(tree, entities.TreeEntry{Path: path, Type: "blob", SHA: sha, Size: len(files[path])})
		p.Blobs[sha] = []byte(files[path])
	}
	p.Trees[summary.FullName] = tree
}
