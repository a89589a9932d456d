package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// FormatNDJSON is newline-delimited JSON, one record per line.
const FormatNDJSON = "ndjson"

// NDJSONDatasetRepository writes and reads the crawl dataset.
type NDJSONDatasetRepository struct{}

var (
	_ repositories.DatasetRepository       = (*NDJSONDatasetRepository)(nil)
	_ repositories.DatasetReaderRepository = (*NDJSONDatasetRepository)(nil)
)

// NewNDJSONDatasetRepository creates the NDJSON dataset repository.
func NewNDJSONDatasetRepository() *NDJSONDatasetRepository {
	return &NDJSONDatasetRepository{}
}

func (r *NDJSONDatasetRepository) Format() string { return FormatNDJSON }

// Write replaces path with one JSON object per record.
func (r *NDJSONDatasetRepository) Write(path string, records []entities.OutputRecord) error {
	return writeAtomic(path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		for i, record := range records {
			if err := encoder.Encode(record); err != nil {
				return fmt.Errorf("failed to encode record %d (%s): %w", i, record.SampleID, err)
			}
		}
		return nil
	})
}

// Read loads every record of path. Blank lines are skipped.
func (r *NDJSONDatasetRepository) Read(path string) ([]entities.OutputRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	var records []entities.OutputRecord
	decoder := json.NewDecoder(file)
	for {
		var record entities.OutputRecord
		decodeErr := decoder.Decode(&record)
		if errors.Is(decodeErr, io.EOF) {
			break
		}
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", len(records)+1, decodeErr)
		}
		records = append(records, record)
	}
	return records, nil
}
