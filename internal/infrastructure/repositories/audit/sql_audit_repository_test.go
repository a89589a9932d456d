//go:build unit

package audit_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	auditRepo "github.com/rios0rios0/iaccrawl/internal/infrastructure/repositories/audit"
	"github.com/rios0rios0/iaccrawl/test/domain/entitybuilders"
)

func TestSQLAuditRepositoryRecord(t *testing.T) {
	t.Parallel()

	t.Run("should upsert one row per repository and run", func(t *testing.T) {
		t.Parallel()

		// given
		dsn := filepath.Join(t.TempDir(), "audit.db")
		ledger, err := auditRepo.NewSQLAuditRepository(entities.AuditSettings{Backend: entities.AuditSQLite, DSN: dsn})
		require.NoError(t, err)
		meta := entitybuilders.NewRepositoryMetadataBuilder().WithID(7).WithFullName("acme/network").BuildMetadata()
		provisional := entities.NewCandidate(meta)
		provisional.Trace.MaturityPass = true
		rejected := provisional.Reject(entities.RejectBehaviorOutlier)
		at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		// when
		require.NoError(t, ledger.Record(context.Background(), "run-1", provisional, at))
		require.NoError(t, ledger.Record(context.Background(), "run-1", rejected, at))
		require.NoError(t, ledger.Record(context.Background(), "run-2", provisional.Accept(), at))
		require.NoError(t, ledger.Close())

		// then
		db, openErr := sql.Open("sqlite", dsn)
		require.NoError(t, openErr)
		defer db.Close()

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM crawl_candidates").Scan(&count))
		assert.Equal(t, 2, count)

		var (
			reason   sql.NullString
			accepted bool
			maturity bool
		)
		require.NoError(t, db.QueryRow(
			"SELECT reject_reason, accepted, maturity_pass FROM crawl_candidates WHERE run_id = ? AND repo_id = ?",
			"run-1", 7,
		).Scan(&reason, &accepted, &maturity))
		assert.Equal(t, "behavior_outlier", reason.String)
		assert.False(t, accepted)
		assert.True(t, maturity)

		require.NoError(t, db.QueryRow(
			"SELECT reject_reason, accepted FROM crawl_candidates WHERE run_id = ?", "run-2",
		).Scan(&reason, &accepted))
		assert.False(t, reason.Valid)
		assert.True(t, accepted)
	})

	t.Run("should refuse an unknown backend", func(t *testing.T) {
		t.Parallel()

		// given / when
		_, err := auditRepo.Open("mongo", "mongodb://localhost")

		// then
		require.Error(t, err)
	})
}

func TestInsertQuery(t *testing.T) {
	t.Parallel()

	t.Run("should number placeholders for postgres", func(t *testing.T) {
		t.Parallel()

		// given / when
		query := auditRepo.InsertQuery(entities.AuditPostgres)

		// then
		assert.Contains(t, query, "$1, $2")
		assert.Contains(t, query, "$13)")
		assert.NotContains(t, query, "?")
	})

	t.Run("should use question marks for sqlite", func(t *testing.T) {
		t.Parallel()

		// given / when
		query := auditRepo.InsertQuery(entities.AuditSQLite)

		// then
		assert.Contains(t, query, "VALUES (?, ?")
		assert.Contains(t, query, "ON CONFLICT (run_id, repo_id) DO UPDATE SET repo_full_name = excluded.repo_full_name")
	})
}

func TestNoneAuditRepository(t *testing.T) {
	t.Parallel()

	t.Run("should accept and discard records", func(t *testing.T) {
		t.Parallel()

		// given
		ledger, err := auditRepo.NewNoneAuditRepository(entities.AuditSettings{})
		require.NoError(t, err)
		meta := entitybuilders.NewRepositoryMetadataBuilder().BuildMetadata()

		// when
		recordErr := ledger.Record(context.Background(), "run", entities.NewCandidate(meta), time.Now())

		// then
		require.NoError(t, recordErr)
		require.NoError(t, ledger.Close())
	})
}
