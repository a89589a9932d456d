package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

const (
	platformName     = "github"
	maxPerPage       = 100
	languageFilter   = "language:HCL"
	defaultUserAgent = "terraform-dataset-crawler"

	// secondary limits do not always carry Retry-After
	defaultAbuseWait = time.Minute
)

// GitHubPlatformRepository implements repositories.PlatformRepository for GitHub.
// It is safe for concurrent use; pacing and quota state are shared by all callers.
type GitHubPlatformRepository struct {
	client  *gh.Client
	limiter *rate.Limiter
	gate    *rateGate
	blobs   *lru.Cache[string, []byte]
	now     func() time.Time
}

// NewGitHubPlatformRepository creates a GitHub client from the platform settings.
func NewGitHubPlatformRepository(settings entities.PlatformSettings) (repositories.PlatformRepository, error) {
	return newGitHubPlatformRepository(settings)
}

func newGitHubPlatformRepository(settings entities.PlatformSettings) (*GitHubPlatformRepository, error) {
	client := gh.NewClient(newHTTPClient(settings))
	if settings.Token != "" {
		client = client.WithAuthToken(settings.Token)
	} else {
		logger.Warn("[github] No token configured, using the unauthenticated quota")
	}

	if settings.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(settings.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid platform.base_url %q: %w", settings.BaseURL, err)
		}
		client.BaseURL = baseURL
	}

	client.UserAgent = settings.UserAgent
	if client.UserAgent == "" {
		client.UserAgent = defaultUserAgent
	}

	limit := rate.Inf
	if settings.RequestsPerSecond > 0 {
		limit = rate.Limit(settings.RequestsPerSecond)
	}

	var blobs *lru.Cache[string, []byte]
	if settings.BlobCacheSize > 0 {
		cache, err := lru.New[string, []byte](settings.BlobCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob cache: %w", err)
		}
		blobs = cache
	}

	return &GitHubPlatformRepository{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		gate:    &rateGate{},
		blobs:   blobs,
		now:     time.Now,
	}, nil
}

// newHTTPClient retries connection failures and 5xx responses. Quota responses
// (403/429) are never retried here: they surface as rate-limit errors so the
// caller can choose between aborting and waiting.
func newHTTPClient(settings entities.PlatformSettings) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = leveledLogger{}
	retryClient.RetryMax = settings.MaxRetries
	if settings.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = settings.RetryWaitMin
	}
	if settings.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = settings.RetryWaitMax
	}
	retryClient.HTTPClient.Timeout = settings.RequestTimeout
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests) {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return retryClient.StandardClient()
}

func (p *GitHubPlatformRepository) Name() string { return platformName }

// SearchRepositories pages through the search API, most-starred first.
func (p *GitHubPlatformRepository) SearchRepositories(
	ctx context.Context,
	keywords []string,
	limit int,
) ([]entities.RepositorySummary, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := SearchQuery(keywords)
	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: min(maxPerPage, limit), Page: 1},
	}

	summaries := make([]entities.RepositorySummary, 0, limit)
	for len(summaries) < limit {
		if err := p.before(ctx); err != nil {
			return nil, err
		}
		result, resp, err := p.client.Search.Repositories(ctx, query, opts)
		if err != nil {
			return nil, p.translate(fmt.Errorf("search page %d failed: %w", opts.Page, err))
		}
		if len(result.Repositories) == 0 {
			break
		}
		for _, repo := range result.Repositories {
			summaries = append(summaries, toSummary(repo))
		}
		logger.Debugf("[github] Search page %d returned %d repositories", opts.Page, len(result.Repositories))
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// GetHeadCommit resolves the commit the branch points at.
func (p *GitHubPlatformRepository) GetHeadCommit(
	ctx context.Context,
	fullName, branch string,
) (string, bool, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return "", false, err
	}
	if beforeErr := p.before(ctx); beforeErr != nil {
		return "", false, beforeErr
	}

	sha, resp, err := p.client.Repositories.GetCommitSHA1(ctx, owner, name, branch, "")
	if absent(resp) {
		return "", false, nil
	}
	if err != nil {
		return "", false, p.translate(err)
	}
	return sha, sha != "", nil
}

// GetReadme returns the decoded readme of the default branch.
func (p *GitHubPlatformRepository) GetReadme(ctx context.Context, fullName string) (string, bool, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return "", false, err
	}
	if beforeErr := p.before(ctx); beforeErr != nil {
		return "", false, beforeErr
	}

	readme, resp, err := p.client.Repositories.GetReadme(ctx, owner, name, nil)
	if absent(resp) {
		return "", false, nil
	}
	if err != nil {
		return "", false, p.translate(err)
	}
	text, err := readme.GetContent()
	if err != nil {
		return "", false, fmt.Errorf("failed to decode readme of %s: %w", fullName, err)
	}
	return text, true, nil
}

// GetTree lists the full tree of a commit, refusing truncated listings.
func (p *GitHubPlatformRepository) GetTree(
	ctx context.Context,
	fullName, commit string,
) ([]entities.TreeEntry, bool, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, false, err
	}
	if beforeErr := p.before(ctx); beforeErr != nil {
		return nil, false, beforeErr
	}

	tree, resp, err := p.client.Git.GetTree(ctx, owner, name, commit, true)
	if absent(resp) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, p.translate(err)
	}
	if tree.GetTruncated() {
		return nil, false, fmt.Errorf("%s@%s: %w", fullName, commit, repositories.ErrTreeTruncated)
	}

	entries := make([]entities.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, entities.TreeEntry{
			Path: entry.GetPath(),
			Type: entry.GetType(),
			SHA:  entry.GetSHA(),
			Size: entry.GetSize(),
		})
	}
	return entries, true, nil
}

// GetBlob returns the raw bytes of a blob. Blobs are content-addressed, so a
// cached copy is served for any repository asking for the same hash.
func (p *GitHubPlatformRepository) GetBlob(
	ctx context.Context,
	fullName, blobSHA string,
) ([]byte, bool, error) {
	if p.blobs != nil {
		if cached, ok := p.blobs.Get(blobSHA); ok {
			return cached, true, nil
		}
	}

	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, false, err
	}
	if beforeErr := p.before(ctx); beforeErr != nil {
		return nil, false, beforeErr
	}

	raw, resp, err := p.client.Git.GetBlobRaw(ctx, owner, name, blobSHA)
	if absent(resp) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, p.translate(err)
	}
	if len(raw) == 0 {
		return nil, false, nil
	}
	if p.blobs != nil {
		p.blobs.Add(blobSHA, raw)
	}
	return raw, true, nil
}

// before paces the call and fails fast while the quota gate is closed.
func (p *GitHubPlatformRepository) before(ctx context.Context) error {
	if err := p.gate.check(p.now()); err != nil {
		return err
	}
	return p.limiter.Wait(ctx)
}

// translate maps go-github quota errors onto *repositories.RateLimitError and
// closes the shared gate until the reset.
func (p *GitHubPlatformRepository) translate(err error) error {
	now := p.now()

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		reset := rateErr.Rate.Reset.Time
		if reset.Before(now) {
			reset = now
		}
		p.gate.close(reset)
		return &repositories.RateLimitError{RetryAfter: reset.Sub(now), Reset: reset}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		wait := abuseErr.GetRetryAfter()
		if wait <= 0 {
			wait = defaultAbuseWait
		}
		reset := now.Add(wait)
		p.gate.close(reset)
		return &repositories.RateLimitError{RetryAfter: wait, Reset: reset}
	}

	return err
}

// SearchQuery builds the search expression restricted to HCL repositories.
func SearchQuery(keywords []string) string {
	terms := make([]string, 0, len(keywords)+1)
	for _, keyword := range keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			terms = append(terms, keyword)
		}
	}
	return strings.Join(append(terms, languageFilter), " ")
}

func toSummary(repo *gh.Repository) entities.RepositorySummary {
	return entities.RepositorySummary{
		ID:            repo.GetID(),
		FullName:      repo.GetFullName(),
		HTMLURL:       repo.GetHTMLURL(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		PushedAt:      repo.GetPushedAt().Time,
		DefaultBranch: repo.GetDefaultBranch(),
		License:       repo.GetLicense().GetSPDXID(),
	}
}

// absent reports a response meaning the object does not exist: 404, or 409 for
// an empty repository, or 422 for an unknown ref.
func absent(resp *gh.Response) bool {
	if resp == nil {
		return false
	}
	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	default:
		return false
	}
}

func splitFullName(fullName string) (string, string, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/name", fullName)
	}
	return owner, name, nil
}
