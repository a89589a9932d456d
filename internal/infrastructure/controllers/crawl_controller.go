package controllers

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/iaccrawl/internal/domain/commands"
	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// CrawlController handles the "crawl" subcommand.
type CrawlController struct {
	command commands.Crawl
}

// NewCrawlController creates a new CrawlController.
func NewCrawlController(command commands.Crawl) *CrawlController {
	return &CrawlController{command: command}
}

// GetBind returns the Cobra command metadata for the crawl controller.
func (it *CrawlController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "crawl",
		Short: "Crawl and filter Terraform repositories into a dataset",
		Long: `Search the platform for Terraform repositories and run every hit through
the filter pipeline: keyword exclusion, maturity, file extraction,
terraform validate, structural checks and behavioral outlier scoring.

Accepted repositories are written as newline-delimited JSON, one record
per line. Flags override the values of the config file.`,
	}
}

// Execute loads the settings, applies the flag overrides and runs the crawl.
func (it *CrawlController) Execute(cmd *cobra.Command, _ []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCrawlFlags(cmd, settings)
	if validateErr := settings.Validate(); validateErr != nil {
		return fmt.Errorf("invalid settings: %w", validateErr)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := it.command.Execute(ctx, settings)
	if err != nil {
		return err
	}
	return renderReport(cmd.OutOrStdout(), report)
}

// AddFlags adds the crawl-specific flags to the given Cobra command.
func (it *CrawlController) AddFlags(cmd *cobra.Command) {
	defaults := entities.DefaultSettings()
	flags := cmd.Flags()
	flags.StringSlice("keywords", defaults.Search.Keywords, "Search keywords")
	flags.Int("limit", defaults.Search.Limit, "Maximum number of search results")
	flags.Int("min-stars", defaults.Thresholds.MinStars, "Minimum stars")
	flags.Int("min-forks", defaults.Thresholds.MinForks, "Minimum forks")
	flags.Int("max-age-months", defaults.Thresholds.MaxAgeMonths, "Maximum months since the last push")
	flags.Float64("outlier-threshold", defaults.Thresholds.OutlierThreshold, "Maximum behavioral outlier score")
	flags.StringSlice("forbidden", defaults.ForbiddenKeywords, "Keywords that exclude a repository")
	flags.Int("max-files", defaults.Extraction.MaxFiles, "Maximum .tf files per repository")
	flags.String("terraform-bin", defaults.Validator.Binary, "Terraform executable")
	flags.Duration("timeout", defaults.Validator.Timeout, "Timeout of each terraform step")
	flags.String("output", defaults.Output.Path, "NDJSON output path")
	flags.Int("workers", defaults.Pipeline.Workers, "Repositories processed concurrently")
	flags.String("on-rate-limit", defaults.Pipeline.OnRateLimit, "Quota policy: abort or wait")
	flags.String("audit-backend", defaults.Audit.Backend, "Audit ledger: none, sqlite or postgres")
	flags.String("audit-dsn", "", "Audit ledger connection string")
}

// applyCrawlFlags copies the explicitly set flags over the loaded settings.
func applyCrawlFlags(cmd *cobra.Command, settings *entities.Settings) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		flag := flags.Lookup(name)
		return flag != nil && flag.Changed
	}

	if changed("token") {
		token, _ := flags.GetString("token")
		settings.Platform.Token = entities.ResolveToken(token)
	}
	if changed("dry-run") {
		settings.Validator.DryRun, _ = flags.GetBool("dry-run")
	}
	if changed("keywords") {
		settings.Search.Keywords, _ = flags.GetStringSlice("keywords")
	}
	if changed("limit") {
		settings.Search.Limit, _ = flags.GetInt("limit")
	}
	if changed("min-stars") {
		settings.Thresholds.MinStars, _ = flags.GetInt("min-stars")
	}
	if changed("min-forks") {
		settings.Thresholds.MinForks, _ = flags.GetInt("min-forks")
	}
	if changed("max-age-months") {
		settings.Thresholds.MaxAgeMonths, _ = flags.GetInt("max-age-months")
	}
	if changed("outlier-threshold") {
		settings.Thresholds.OutlierThreshold, _ = flags.GetFloat64("outlier-threshold")
	}
	if changed("forbidden") {
		settings.ForbiddenKeywords, _ = flags.GetStringSlice("forbidden")
	}
	if changed("max-files") {
		settings.Extraction.MaxFiles, _ = flags.GetInt("max-files")
	}
	if changed("terraform-bin") {
		settings.Validator.Binary, _ = flags.GetString("terraform-bin")
	}
	if changed("timeout") {
		settings.Validator.Timeout, _ = flags.GetDuration("timeout")
	}
	if changed("output") {
		settings.Output.Path, _ = flags.GetString("output")
	}
	if changed("workers") {
		settings.Pipeline.Workers, _ = flags.GetInt("workers")
	}
	if changed("on-rate-limit") {
		settings.Pipeline.OnRateLimit, _ = flags.GetString("on-rate-limit")
	}
	if changed("audit-backend") {
		settings.Audit.Backend, _ = flags.GetString("audit-backend")
	}
	if changed("audit-dsn") {
		settings.Audit.DSN, _ = flags.GetString("audit-dsn")
	}
}

// renderReport prints the run summary, one row per outcome.
func renderReport(w io.Writer, report *entities.CrawlReport) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Outcome", "Repositories"})

	data := [][]string{
		{"discovered", strconv.Itoa(report.Discovered)},
		{"unresolved", strconv.Itoa(report.Unresolved)},
		{"errors", strconv.Itoa(report.Errored)},
		{"accepted", strconv.Itoa(report.Accepted)},
	}
	for _, reason := range entities.RejectReasons() {
		data = append(data, []string{"rejected: " + string(reason), strconv.Itoa(report.Rejected[reason])})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Dataset written to %s (run %s)\n", report.OutputPath, report.RunID)
	return err
}
