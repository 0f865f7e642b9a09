package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/claritypay/clarity/internal/domain/model"
)

const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS decision_records (
	id            TEXT PRIMARY KEY,
	created_at    TEXT NOT NULL,
	applicant_id  TEXT NOT NULL,
	application   TEXT NOT NULL,
	decision      TEXT NOT NULL,
	model_version TEXT NOT NULL,
	approved      INTEGER NOT NULL,
	credit_score  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decision_records_created_at ON decision_records (created_at);
`

const insertRecordSQL = `
INSERT INTO decision_records (
	id, created_at, applicant_id, application, decision, model_version, approved, credit_score
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const recentRecordsSQL = `
SELECT id, created_at, application, decision, model_version
FROM decision_records
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`

const statsSQL = `
SELECT COUNT(*), COALESCE(AVG(approved), 0), COALESCE(AVG(credit_score), 0)
FROM decision_records
`

// SQLiteStore is the embedded document store for decision records. The full
// application and decision payloads are stored as JSON documents; the scalar
// columns exist only to index and aggregate.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the store at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStoreUnavailable, path, err)
	}
	if _, err := db.ExecContext(ctx, createSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: creating schema in %s: %v", ErrStoreUnavailable, path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append persists one decision record and returns its assigned ID.
func (s *SQLiteStore) Append(ctx context.Context, rec model.DecisionRecord) (string, error) {
	application, err := json.Marshal(rec.Application)
	if err != nil {
		return "", fmt.Errorf("encoding application: %w", err)
	}
	decision, err := json.Marshal(rec.Decision)
	if err != nil {
		return "", fmt.Errorf("encoding decision: %w", err)
	}

	id := uuid.NewString()
	approved := 0
	if rec.Decision.Outcome.Approved {
		approved = 1
	}
	_, err = s.db.ExecContext(ctx, insertRecordSQL,
		id,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.Application.ApplicantID,
		string(application),
		string(decision),
		rec.ModelVersion,
		approved,
		rec.Decision.CreditScore,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return id, nil
}

// Recent returns up to limit records, most recent first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]model.DecisionRecord, error) {
	rows, err := s.db.QueryContext(ctx, recentRecordsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	records := make([]model.DecisionRecord, 0, limit)
	for rows.Next() {
		var (
			rec         model.DecisionRecord
			createdAt   string
			application string
			decision    string
		)
		if err := rows.Scan(&rec.ID, &createdAt, &application, &decision, &rec.ModelVersion); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing record timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(application), &rec.Application); err != nil {
			return nil, fmt.Errorf("decoding application document: %w", err)
		}
		if err := json.Unmarshal([]byte(decision), &rec.Decision); err != nil {
			return nil, fmt.Errorf("decoding decision document: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return records, nil
}

// Stats recomputes aggregate statistics from the full log.
func (s *SQLiteStore) Stats(ctx context.Context) (model.AggregateStats, error) {
	var (
		total        int64
		approvalRate float64
		avgScore     float64
	)
	if err := s.db.QueryRowContext(ctx, statsSQL).Scan(&total, &approvalRate, &avgScore); err != nil {
		return model.AggregateStats{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if total == 0 {
		return model.AggregateStats{
			Connected: true,
			Message:   "no decisions recorded yet",
		}, nil
	}
	return model.AggregateStats{
		Connected:      true,
		TotalDecisions: total,
		ApprovalRate:   round3(approvalRate),
		AvgCreditScore: math.Round(avgScore),
	}, nil
}

// Ping reports whether the store is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
