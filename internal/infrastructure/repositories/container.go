package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	domainRepos "github.com/rios0rios0/iaccrawl/internal/domain/repositories"
	auditRepo "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories/audit"
	datasetRepo "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories/dataset"
	ghRepo "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories/github"
	tfRepo "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories/terraform"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register platform registry with all platform factories
	if err := container.Provide(func() *PlatformRegistry {
		reg := NewPlatformRegistry()
		reg.Register("github", ghRepo.NewGitHubPlatformRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register validator registry with all validation tools
	if err := container.Provide(func() *ValidatorRegistry {
		reg := NewValidatorRegistry()
		reg.Register("terraform", tfRepo.NewTerraformValidatorRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register dataset registry with all output formats
	if err := container.Provide(datasetRepo.NewNDJSONDatasetRepository); err != nil {
		return err
	}
	if err := container.Provide(func(ndjson *datasetRepo.NDJSONDatasetRepository) domainRepos.DatasetReaderRepository {
		return ndjson
	}); err != nil {
		return err
	}
	if err := container.Provide(func(ndjson *datasetRepo.NDJSONDatasetRepository) *DatasetRegistry {
		reg := NewDatasetRegistry()
		reg.Register(ndjson)
		reg.Register(datasetRepo.NewCSVDatasetRepository())
		reg.Register(datasetRepo.NewParquetDatasetRepository())
		return reg
	}); err != nil {
		return err
	}

	// Register audit registry with all ledger backends
	if err := container.Provide(func() *AuditRegistry {
		reg := NewAuditRegistry()
		reg.Register(entities.AuditNone, auditRepo.NewNoneAuditRepository)
		reg.Register(entities.AuditSQLite, auditRepo.NewSQLAuditRepository)
		reg.Register(entities.AuditPostgres, auditRepo.NewSQLAuditRepository)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
