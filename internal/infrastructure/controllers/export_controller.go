package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/iaccrawl/internal/domain/commands"
	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// ExportController handles the "export" subcommand.
type ExportController struct {
	command commands.Export
}

// NewExportController creates a new ExportController.
func NewExportController(command commands.Export) *ExportController {
	return &ExportController{command: command}
}

// GetBind returns the Cobra command metadata for the export controller.
func (it *ExportController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "export",
		Short: "Convert a crawled dataset to CSV or Parquet",
		Long: `Read an NDJSON dataset produced by "crawl" and write it in another format.

csv      sample_id, repo_id, repo_full_name, commit_sha and one column per feature
parquet  one row per sample with its feature vector as a repeated group`,
	}
}

// Execute runs the export.
func (it *ExportController) Execute(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	if input == "" {
		settings, err := loadSettings(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		input = settings.Output.Path
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return it.command.Execute(ctx, commands.ExportOptions{
		InputPath:  input,
		Format:     format,
		OutputPath: output,
	})
}

// AddFlags adds the export-specific flags to the given Cobra command.
func (it *ExportController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "NDJSON dataset to read (default: output.path of the config)")
	cmd.Flags().String("format", "csv", "Target format: csv or parquet")
	cmd.Flags().String("output", "", "Path of the exported file")
	_ = cmd.MarkFlagRequired("output")
}
