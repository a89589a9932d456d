//go:build unit

package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	domainRepos "github.com/rios0rios0/iaccrawl/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/iaccrawl/test/infrastructure/repositorydoubles"
)

func TestPlatformRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build the platform named by the settings", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &doubles.StubPlatformRepository{}
		reg := infraRepos.NewPlatformRegistry()
		reg.Register("github", func(entities.PlatformSettings) (domainRepos.PlatformRepository, error) {
			return stub, nil
		})

		// when
		platform, err := reg.Get(entities.PlatformSettings{Type: "github"})

		// then
		require.NoError(t, err)
		assert.Same(t, stub, platform)
		assert.Equal(t, []string{"github"}, reg.Names())
	})

	t.Run("should fail for an unknown platform", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewPlatformRegistry()
		reg.Register("github", func(entities.PlatformSettings) (domainRepos.PlatformRepository, error) {
			return &doubles.StubPlatformRepository{}, nil
		})

		// when
		_, err := reg.Get(entities.PlatformSettings{Type: "bitbucket"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown platform type")
		assert.Contains(t, err.Error(), "(available: github)")
	})
}

func TestValidatorRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should surface factory errors", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewValidatorRegistry()
		reg.Register("terraform", func(entities.ValidatorSettings) (domainRepos.ValidatorRepository, error) {
			return nil, domainRepos.ErrToolNotFound
		})

		// when
		_, err := reg.Get(entities.ValidatorSettings{Tool: "terraform"})

		// then
		require.ErrorIs(t, err, domainRepos.ErrToolNotFound)
	})

	t.Run("should fail for an unknown tool", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewValidatorRegistry()

		// when
		_, err := reg.Get(entities.ValidatorSettings{Tool: "tflint"})

		// then
		require.Error(t, err)
	})
}

func TestDatasetRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should key writers by their format", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewDatasetRegistry()
		reg.Register(&doubles.SpyDatasetRepository{FormatName: "parquet"})
		reg.Register(&doubles.SpyDatasetRepository{FormatName: "csv"})

		// when
		writer, err := reg.Get("csv")

		// then
		require.NoError(t, err)
		assert.Equal(t, "csv", writer.Format())
		assert.Equal(t, []string{"csv", "parquet"}, reg.Formats())
	})

	t.Run("should list the registered formats for an unknown one", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewDatasetRegistry()
		reg.Register(&doubles.SpyDatasetRepository{FormatName: "parquet"})
		reg.Register(&doubles.SpyDatasetRepository{FormatName: "csv"})

		// when
		_, err := reg.Get("xlsx")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown dataset format: "xlsx" (available: csv, parquet)`)
	})
}

func TestAuditRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should fall back to none for an empty backend", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyAuditRepository{}
		reg := infraRepos.NewAuditRegistry()
		reg.Register(entities.AuditNone, func(entities.AuditSettings) (domainRepos.AuditRepository, error) {
			return spy, nil
		})

		// when
		ledger, err := reg.Get(entities.AuditSettings{})

		// then
		require.NoError(t, err)
		assert.Same(t, spy, ledger)
	})

	t.Run("should surface open failures", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewAuditRegistry()
		reg.Register(entities.AuditPostgres, func(entities.AuditSettings) (domainRepos.AuditRepository, error) {
			return nil, errors.New("connection refused")
		})

		// when
		_, err := reg.Get(entities.AuditSettings{Backend: entities.AuditPostgres, DSN: "postgres://x"})

		// then
		require.Error(t, err)
	})
}
