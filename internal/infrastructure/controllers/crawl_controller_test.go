//go:build unit

package controllers_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/infrastructure/controllers"
	"github.com/rios0rios0/iaccrawl/test/domain/commanddoubles"
)

// newCobraCommand mirrors the root command's persistent flags.
func newCobraCommand(ctrl entities.Controller, configPath string) *cobra.Command {
	cmd := &cobra.Command{Use: ctrl.GetBind().Use}
	cmd.Flags().StringP("config", "c", configPath, "")
	cmd.Flags().String("token", "", "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	ctrl.AddFlags(cmd)
	return cmd
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iaccrawl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCrawlControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run the crawl with file settings and flag overrides", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCrawlCommand{}
		ctrl := controllers.NewCrawlController(stub)
		config := writeSettings(t, "platform:\n  token: ghp_file\nsearch:\n  limit: 40\n  keywords: [terraform]\n")
		cmd := newCobraCommand(ctrl, config)
		var out bytes.Buffer
		cmd.SetOut(&out)
		require.NoError(t, cmd.ParseFlags([]string{"--limit", "7", "--dry-run"}))

		// when
		err := ctrl.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		require.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, 7, stub.LastSettings.Search.Limit)
		assert.Equal(t, []string{"terraform"}, stub.LastSettings.Search.Keywords)
		assert.Equal(t, "ghp_file", stub.LastSettings.Platform.Token)
		assert.True(t, stub.LastSettings.Validator.DryRun)
		assert.Contains(t, out.String(), "discovered")
	})

	t.Run("should refuse invalid overrides before crawling", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCrawlCommand{}
		ctrl := controllers.NewCrawlController(stub)
		cmd := newCobraCommand(ctrl, writeSettings(t, "{}\n"))
		require.NoError(t, cmd.ParseFlags([]string{"--on-rate-limit", "retry"}))

		// when
		err := ctrl.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid settings")
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should return the crawl error", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("crawl aborted: rate limited")
		stub := &commanddoubles.StubCrawlCommand{ExecuteErr: cause}
		ctrl := controllers.NewCrawlController(stub)
		cmd := newCobraCommand(ctrl, writeSettings(t, "{}\n"))

		// when
		err := ctrl.Execute(cmd, nil)

		// then
		require.ErrorIs(t, err, cause)
	})
}

func TestApplyCrawlFlags(t *testing.T) {
	t.Parallel()

	t.Run("should only override flags that were set", func(t *testing.T) {
		t.Parallel()

		// given
		ctrl := controllers.NewCrawlController(&commanddoubles.StubCrawlCommand{})
		cmd := newCobraCommand(ctrl, "")
		require.NoError(t, cmd.ParseFlags([]string{
			"--keywords", "terraform,azure",
			"--min-stars", "25",
			"--outlier-threshold", "1.5",
			"--timeout", "30s",
			"--workers", "8",
			"--on-rate-limit", "wait",
			"--audit-backend", "sqlite",
			"--audit-dsn", "audit.db",
		}))
		settings := entities.DefaultSettings()
		settings.Search.Limit = 55

		// when
		controllers.ApplyCrawlFlags(cmd, settings)

		// then
		assert.Equal(t, []string{"terraform", "azure"}, settings.Search.Keywords)
		assert.Equal(t, 55, settings.Search.Limit)
		assert.Equal(t, 25, settings.Thresholds.MinStars)
		assert.InDelta(t, 1.5, settings.Thresholds.OutlierThreshold, 0)
		assert.Equal(t, 30*time.Second, settings.Validator.Timeout)
		assert.Equal(t, 8, settings.Pipeline.Workers)
		assert.Equal(t, entities.RateLimitWait, settings.Pipeline.OnRateLimit)
		assert.Equal(t, entities.AuditSQLite, settings.Audit.Backend)
		assert.Equal(t, "audit.db", settings.Audit.DSN)
		assert.Equal(t, entities.DefaultThresholds().MinForks, settings.Thresholds.MinForks)
	})
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	t.Run("should print every outcome and the output path", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewCrawlReport("run-42")
		report.Discovered = 12
		report.Accepted = 4
		report.Rejected[entities.RejectBehaviorOutlier] = 3
		report.OutputPath = "output/terraform_dataset.ndjson"
		var out bytes.Buffer

		// when
		err := controllers.RenderReport(&out, report)

		// then
		require.NoError(t, err)
		text := out.String()
		assert.Contains(t, text, "rejected: behavior_outlier")
		assert.Contains(t, text, "rejected: keyword_exclusion")
		assert.Contains(t, text, "12")
		assert.Contains(t, text, "Dataset written to output/terraform_dataset.ndjson (run run-42)")
	})
}
