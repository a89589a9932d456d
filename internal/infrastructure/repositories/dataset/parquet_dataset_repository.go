package dataset

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// FormatParquet is the columnar export of the dataset.
const FormatParquet = "parquet"

// Sample is one Parquet row.
type Sample struct {
	SampleID             string    `parquet:"sample_id,snappy"`
	RepoID               int64     `parquet:"repo_id,snappy"`
	RepoFullName         string    `parquet:"repo_full_name,snappy"`
	CommitSHA            string    `parquet:"commit_sha,snappy"`
	License              *string   `parquet:"license,optional,snappy"`
	Accepted             bool      `parquet:"accepted"`
	BehaviorOutlierScore float64   `parquet:"behavior_outlier_score,snappy"`
	Features             []Feature `parquet:"features"`
}

// Feature is one entry of a sample's feature vector.
type Feature struct {
	Name  string  `parquet:"name"`
	Value float64 `parquet:"value"`
}

// ParquetDatasetRepository writes the dataset as a Parquet file.
type ParquetDatasetRepository struct{}

// NewParquetDatasetRepository creates the Parquet dataset repository.
func NewParquetDatasetRepository() *ParquetDatasetRepository {
	return &ParquetDatasetRepository{}
}

func (r *ParquetDatasetRepository) Format() string { return FormatParquet }

// Write replaces path with a Parquet file holding one row per record.
func (r *ParquetDatasetRepository) Write(path string, records []entities.OutputRecord) error {
	samples := make([]Sample, 0, len(records))
	for _, record := range records {
		samples = append(samples, toSample(record))
	}

	return writeAtomic(path, func(w io.Writer) error {
		writer := parquet.NewGenericWriter[Sample](w)
		if _, err := writer.Write(samples); err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to write data to parquet file: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("failed to finish parquet file: %w", err)
		}
		return nil
	})
}

func toSample(record entities.OutputRecord) Sample {
	features := make([]Feature, 0, len(record.FeatureVector))
	for _, key := range record.FeatureVector.Keys() {
		features = append(features, Feature{Name: key, Value: record.FeatureVector[key]})
	}
	return Sample{
		SampleID:             record.SampleID,
		RepoID:               record.RepoID,
		RepoFullName:         record.RepoFullName,
		CommitSHA:            record.CommitSHA,
		License:              record.License,
		Accepted:             record.FilterTrace.Accepted,
		BehaviorOutlierScore: record.FilterTrace.BehaviorOutlierScore,
		Features:             features,
	}
}
