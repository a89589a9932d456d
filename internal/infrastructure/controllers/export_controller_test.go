//go:build unit

package controllers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/iaccrawl/internal/infrastructure/controllers"
	"github.com/rios0rios0/iaccrawl/test/domain/commanddoubles"
)

func TestExportControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass the flags through", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubExportCommand{}
		ctrl := controllers.NewExportController(stub)
		cmd := newCobraCommand(ctrl, "")
		require.NoError(t, cmd.ParseFlags([]string{
			"--input", "crawl.ndjson", "--format", "parquet", "--output", "crawl.parquet",
		}))

		// when
		err := ctrl.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "crawl.ndjson", stub.LastOpts.InputPath)
		assert.Equal(t, "parquet", stub.LastOpts.Format)
		assert.Equal(t, "crawl.parquet", stub.LastOpts.OutputPath)
	})

	t.Run("should default the input to the configured output path", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubExportCommand{}
		ctrl := controllers.NewExportController(stub)
		cmd := newCobraCommand(ctrl, writeSettings(t, "output:\n  path: data/run.ndjson\n"))
		require.NoError(t, cmd.ParseFlags([]string{"--output", "run.csv"}))

		// when
		err := ctrl.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "data/run.ndjson", stub.LastOpts.InputPath)
		assert.Equal(t, "csv", stub.LastOpts.Format)
	})

	t.Run("should describe the subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		ctrl := controllers.NewExportController(&commanddoubles.StubExportCommand{})

		// when
		bind := ctrl.GetBind()

		// then
		assert.Equal(t, "export", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})
}
