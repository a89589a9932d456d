//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/iaccrawl/internal/domain/commands"
	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	infraRepos "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/iaccrawl/test/infrastructure/repositorydoubles"
)

func TestExportCommandExecute(t *testing.T) {
	t.Parallel()

	newCommand := func(reader *doubles.StubDatasetReaderRepository) (*commands.ExportCommand, *doubles.SpyDatasetRepository) {
		csv := &doubles.SpyDatasetRepository{FormatName: "csv"}
		registry := infraRepos.NewDatasetRegistry()
		registry.Register(csv)
		return commands.NewExportCommand(reader, registry), csv
	}

	t.Run("should convert every record into the requested format", func(t *testing.T) {
		t.Parallel()

		// given
		reader := &doubles.StubDatasetReaderRepository{
			Records: []entities.OutputRecord{{SampleID: "1:abc"}, {SampleID: "2:def"}},
		}
		cmd, csv := newCommand(reader)
		opts := commands.ExportOptions{InputPath: "in.ndjson", Format: "csv", OutputPath: "out.csv"}

		// when
		err := cmd.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"in.ndjson"}, reader.ReadPaths)
		assert.Len(t, csv.Written["out.csv"], 2)
	})

	t.Run("should refuse to overwrite the input", func(t *testing.T) {
		t.Parallel()

		// given
		reader := &doubles.StubDatasetReaderRepository{}
		cmd, _ := newCommand(reader)
		opts := commands.ExportOptions{InputPath: "data.ndjson", Format: "csv", OutputPath: "data.ndjson"}

		// when
		err := cmd.Execute(context.Background(), opts)

		// then
		require.Error(t, err)
		assert.Empty(t, reader.ReadPaths)
	})

	t.Run("should reject an unknown format before reading", func(t *testing.T) {
		t.Parallel()

		// given
		reader := &doubles.StubDatasetReaderRepository{}
		cmd, _ := newCommand(reader)
		opts := commands.ExportOptions{InputPath: "in.ndjson", Format: "xlsx", OutputPath: "out.xlsx"}

		// when
		err := cmd.Execute(context.Background(), opts)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown dataset format")
		assert.Empty(t, reader.ReadPaths)
	})

	t.Run("should surface read failures", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("unexpected EOF")
		reader := &doubles.StubDatasetReaderRepository{ReadErr: cause}
		cmd, csv := newCommand(reader)
		opts := commands.ExportOptions{InputPath: "in.ndjson", Format: "csv", OutputPath: "out.csv"}

		// when
		err := cmd.Execute(context.Background(), opts)

		// then
		require.ErrorIs(t, err, cause)
		assert.Empty(t, csv.Written)
	})
}
