package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Rate-limit policies of the crawl pipeline.
const (
	RateLimitAbort = "abort"
	RateLimitWait  = "wait"
)

// Audit backends.
const (
	AuditNone     = "none"
	AuditSQLite   = "sqlite"
	AuditPostgres = "postgres"
)

// Settings is the top-level configuration for iaccrawl.
type Settings struct {
	Platform          PlatformSettings   `yaml:"platform"`
	Search            SearchSettings     `yaml:"search"`
	Thresholds        Thresholds         `yaml:"thresholds"`
	ForbiddenKeywords []string           `yaml:"forbidden_keywords"`
	Extraction        ExtractionSettings `yaml:"extraction"`
	Structural        StructuralSettings `yaml:"structural"`
	Validator         ValidatorSettings  `yaml:"validator"`
	Pipeline          PipelineSettings   `yaml:"pipeline"`
	Output            OutputSettings     `yaml:"output"`
	Audit             AuditSettings      `yaml:"audit"`
}

// PlatformSettings describes the hosted source-code platform and its client.
type PlatformSettings struct {
	Type              string        `yaml:"type"`     // "github"
	Token             string        `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	BaseURL           string        `yaml:"base_url"` // Enterprise API root, empty for api.github.com
	UserAgent         string        `yaml:"user_agent"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 disables pacing
	MaxRetries        int           `yaml:"max_retries"`
	RetryWaitMin      time.Duration `yaml:"retry_wait_min"`
	RetryWaitMax      time.Duration `yaml:"retry_wait_max"`
	BlobCacheSize     int           `yaml:"blob_cache_size"`
}

// SearchSettings drives repository discovery.
type SearchSettings struct {
	Keywords []string `yaml:"keywords"`
	Limit    int      `yaml:"limit"`
}

// ExtractionSettings bounds what the content extractor pulls per repository.
type ExtractionSettings struct {
	MaxFiles  int    `yaml:"max_files"`
	Extension string `yaml:"extension"`
}

// StructuralSettings tunes the textual pre-filter and the provider feature.
type StructuralSettings struct {
	MinResources  int    `yaml:"min_resources"`
	ProviderToken string `yaml:"provider_token"`
}

// ValidatorSettings describes the external IaC validation tool.
type ValidatorSettings struct {
	Tool           string        `yaml:"tool"` // "terraform"
	Binary         string        `yaml:"binary"`
	Timeout        time.Duration `yaml:"timeout"`
	DryRun         bool          `yaml:"dry_run"`
	PluginDir      string        `yaml:"plugin_dir"`
	PluginCacheDir string        `yaml:"plugin_cache_dir"`
}

// PipelineSettings controls concurrency and quota handling of a run.
type PipelineSettings struct {
	Workers          int           `yaml:"workers"`
	OnRateLimit      string        `yaml:"on_rate_limit"` // "abort" or "wait"
	MaxRateLimitWait time.Duration `yaml:"max_rate_limit_wait"`
}

// OutputSettings names where the dataset goes.
type OutputSettings struct {
	Path string `yaml:"path"`
}

// AuditSettings selects the optional candidate ledger.
type AuditSettings struct {
	Backend string `yaml:"backend"` // "none", "sqlite", "postgres"
	DSN     string `yaml:"dsn"`
}

// DefaultSettings returns the configuration used when no file overrides a value.
func DefaultSettings() *Settings {
	return &Settings{
		Platform: PlatformSettings{
			Type:           "github",
			Token:          "${GITHUB_TOKEN}",
			UserAgent:      "terraform-dataset-crawler",
			RequestTimeout: 30 * time.Second,
			MaxRetries:     3,
			RetryWaitMin:   time.Second,
			RetryWaitMax:   30 * time.Second,
			BlobCacheSize:  4096,
		},
		Search: SearchSettings{
			Keywords: []string{"terraform", "aws"},
			Limit:    100,
		},
		Thresholds:        DefaultThresholds(),
		ForbiddenKeywords: []string{"demo", "lab", "test", "vulnerable", "insecure"},
		Extraction: ExtractionSettings{
			MaxFiles:  200,
			Extension: ".tf",
		},
		Structural: StructuralSettings{
			MinResources:  DefaultMinResources,
			ProviderToken: DefaultProviderToken,
		},
		Validator: ValidatorSettings{
			Tool:    "terraform",
			Binary:  "terraform",
			Timeout: 120 * time.Second,
		},
		Pipeline: PipelineSettings{
			Workers:          4,
			OnRateLimit:      RateLimitAbort,
			MaxRateLimitWait: 15 * time.Minute,
		},
		Output: OutputSettings{Path: filepath.Join("output", "terraform_dataset.ndjson")},
		Audit:  AuditSettings{Backend: AuditNone},
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads a configuration file over the defaults, expanding
// environment variables and resolving the token file path.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.Platform.Token = ResolveToken(settings.Platform.Token)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".iaccrawl.yaml",
		".iaccrawl.yml",
		"iaccrawl.yaml",
		"iaccrawl.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Debugf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}
	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Validate checks for required and well-formed configuration values.
func (s *Settings) Validate() error {
	if s.Platform.Type == "" {
		return errors.New("platform.type is required")
	}
	if len(s.Search.Keywords) == 0 {
		return errors.New("search.keywords must have at least one entry")
	}
	if s.Search.Limit <= 0 {
		return fmt.Errorf("search.limit must be positive, got %d", s.Search.Limit)
	}
	if s.Thresholds.MinStars < 0 || s.Thresholds.MinForks < 0 || s.Thresholds.MaxAgeMonths < 0 {
		return errors.New("thresholds must not be negative")
	}
	if s.Thresholds.OutlierThreshold < 0 {
		return fmt.Errorf("thresholds.outlier_threshold must not be negative, got %g",
			s.Thresholds.OutlierThreshold)
	}
	if s.Extraction.MaxFiles <= 0 {
		return fmt.Errorf("extraction.max_files must be positive, got %d", s.Extraction.MaxFiles)
	}
	if strings.TrimSpace(s.Extraction.Extension) == "" {
		return errors.New("extraction.extension is required")
	}
	if strings.TrimSpace(s.Structural.ProviderToken) == "" {
		return errors.New("structural.provider_token is required")
	}
	if s.Validator.Tool == "" {
		return errors.New("validator.tool is required")
	}
	if s.Validator.Timeout <= 0 {
		return errors.New("validator.timeout must be positive")
	}
	if s.Pipeline.Workers <= 0 {
		return fmt.Errorf("pipeline.workers must be positive, got %d", s.Pipeline.Workers)
	}
	switch s.Pipeline.OnRateLimit {
	case RateLimitAbort, RateLimitWait:
	default:
		return fmt.Errorf("pipeline.on_rate_limit must be %q or %q, got %q",
			RateLimitAbort, RateLimitWait, s.Pipeline.OnRateLimit)
	}
	switch s.Audit.Backend {
	case AuditNone, "":
	case AuditSQLite, AuditPostgres:
		if s.Audit.DSN == "" {
			return fmt.Errorf("audit.dsn is required for the %q backend", s.Audit.Backend)
		}
	default:
		return fmt.Errorf("audit.backend %q is not supported", s.Audit.Backend)
	}
	if s.Output.Path == "" {
		return errors.New("output.path is required")
	}
	return nil
}
