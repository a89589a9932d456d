package repositories

import "github.com/rios0rios0/iaccrawl/internal/domain/entities"

// DatasetRepository persists emitted records in one file format.
type DatasetRepository interface {
	// Format returns the format identifier (e.g. "ndjson", "csv").
	Format() string

	// Write replaces the file at path with the records. A failed write leaves any
	// previous file at path untouched.
	Write(path string, records []entities.OutputRecord) error
}

// DatasetReaderRepository loads records previously written by a DatasetRepository.
type DatasetReaderRepository interface {
	Read(path string) ([]entities.OutputRecord, error)
}
