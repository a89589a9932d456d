package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// FormatCSV is the tabular feature export consumed by context assignment.
const FormatCSV = "csv"

var identityColumns = []string{"sample_id", "repo_id", "repo_full_name", "commit_sha"}

// CSVDatasetRepository writes one row per record: identity columns followed by
// the feature columns in lexical order.
type CSVDatasetRepository struct{}

// NewCSVDatasetRepository creates the CSV dataset repository.
func NewCSVDatasetRepository() *CSVDatasetRepository {
	return &CSVDatasetRepository{}
}

func (r *CSVDatasetRepository) Format() string { return FormatCSV }

// Write replaces path with the CSV table. A feature missing from a record is
// written as 0.
func (r *CSVDatasetRepository) Write(path string, records []entities.OutputRecord) error {
	features := featureColumns(records)
	return writeAtomic(path, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		if err := csvWriter.Write(append(append([]string{}, identityColumns...), features...)); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		for _, record := range records {
			row := []string{
				record.SampleID,
				strconv.FormatInt(record.RepoID, 10),
				record.RepoFullName,
				record.CommitSHA,
			}
			for _, key := range features {
				row = append(row, strconv.FormatFloat(record.FeatureVector[key], 'f', -1, 64))
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write %s: %w", record.SampleID, err)
			}
		}
		csvWriter.Flush()
		return csvWriter.Error()
	})
}

// featureColumns is the sorted union of every record's feature keys.
func featureColumns(records []entities.OutputRecord) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		for key := range record.FeatureVector {
			seen[key] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}
