package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

const createTable = `CREATE TABLE IF NOT EXISTS crawl_candidates (
	run_id TEXT NOT NULL,
	repo_id BIGINT NOT NULL,
	repo_full_name TEXT NOT NULL,
	commit_sha TEXT NOT NULL,
	keyword_exclusion BOOLEAN NOT NULL,
	maturity_pass BOOLEAN NOT NULL,
	syntax_pass BOOLEAN NOT NULL,
	structural_pass BOOLEAN NOT NULL,
	behavior_pass BOOLEAN NOT NULL,
	behavior_outlier_score DOUBLE PRECISION NOT NULL,
	accepted BOOLEAN NOT NULL,
	reject_reason TEXT,
	recorded_at TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, repo_id)
)`

var insertColumns = []string{
	"run_id", "repo_id", "repo_full_name", "commit_sha",
	"keyword_exclusion", "maturity_pass", "syntax_pass", "structural_pass", "behavior_pass",
	"behavior_outlier_score", "accepted", "reject_reason", "recorded_at",
}

// SQLAuditRepository records terminal candidates in SQLite or PostgreSQL.
type SQLAuditRepository struct {
	db      *sql.DB
	backend string
	insert  string
}

var _ repositories.AuditRepository = (*SQLAuditRepository)(nil)

// NewSQLAuditRepository opens the ledger described by settings and creates its table.
func NewSQLAuditRepository(settings entities.AuditSettings) (repositories.AuditRepository, error) {
	return Open(settings.Backend, settings.DSN)
}

// Open connects to the backend ("sqlite" or "postgres") and creates the table if needed.
func Open(backend, dsn string) (*SQLAuditRepository, error) {
	var driverName string
	switch backend {
	case entities.AuditSQLite:
		driverName = "sqlite"
	case entities.AuditPostgres:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported audit backend: %q", backend)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s audit ledger: %w", backend, err)
	}
	if backend == entities.AuditSQLite {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}
	if _, execErr := db.Exec(createTable); execErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create audit table: %w", execErr)
	}

	return &SQLAuditRepository{
		db:      db,
		backend: backend,
		insert:  insertQuery(backend),
	}, nil
}

// Record stores one terminal candidate. Recording it twice in a run keeps the latest state.
func (r *SQLAuditRepository) Record(
	ctx context.Context,
	runID string,
	candidate entities.Candidate,
	at time.Time,
) error {
	trace := candidate.Trace
	var reason sql.NullString
	if trace.RejectReason != "" {
		reason = sql.NullString{String: string(trace.RejectReason), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, r.insert,
		runID,
		candidate.Repository.ID,
		candidate.Repository.FullName,
		candidate.Repository.HeadCommit,
		!trace.KeywordExclusionPass,
		trace.MaturityPass,
		trace.SyntaxPass,
		trace.StructuralPass,
		trace.BehaviorPass,
		trace.BehaviorScore,
		trace.Accepted,
		reason,
		at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", candidate.Repository.FullName, err)
	}
	return nil
}

// Close releases the database handle.
func (r *SQLAuditRepository) Close() error {
	return r.db.Close()
}

// insertQuery returns the upsert statement with the backend's placeholders.
func insertQuery(backend string) string {
	placeholders := make([]string, len(insertColumns))
	updates := make([]string, 0, len(insertColumns))
	for i, column := range insertColumns {
		if backend == entities.AuditPostgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
		if column != "run_id" && column != "repo_id" {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
		}
	}
	return fmt.Sprintf(
		"INSERT INTO crawl_candidates (%s) VALUES (%s) ON CONFLICT (run_id, repo_id) DO UPDATE SET %s",
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)
}
