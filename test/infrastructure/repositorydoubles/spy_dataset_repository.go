//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// SpyDatasetRepository implements repositories.DatasetRepository and keeps what was written.
type SpyDatasetRepository struct {
	FormatName string
	WriteErr   error

	// spy: records by path
	Written map[string][]entities.OutputRecord
}

var _ repositories.DatasetRepository = (*SpyDatasetRepository)(nil)

func (d *SpyDatasetRepository) Format() string { return d.FormatName }

func (d *SpyDatasetRepository) Write(path string, records []entities.OutputRecord) error {
	if d.WriteErr != nil {
		return d.WriteErr
	}
	if d.Written == nil {
		d.Written = make(map[string][]entities.OutputRecord)
	}
	d.Written[path] = records
	return nil
}

// StubDatasetReaderRepository implements repositories.DatasetReaderRepository.
type StubDatasetReaderRepository struct {
	Records []entities.OutputRecord
	ReadErr error

	// spy: paths read
	ReadPaths []string
}

var _ repositories.DatasetReaderRepository = (*StubDatasetReaderRepository)(nil)

func (d *StubDatasetReaderRepository) Read(path string) ([]entities.OutputRecord, error) {
	d.ReadPaths = append(d.ReadPaths, path)
	return d.Records, d.ReadErr
}
