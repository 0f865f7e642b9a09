package recorder_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/claritypay/clarity/internal/adapters/recorder"
	"github.com/claritypay/clarity/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *recorder.SQLiteStore {
	t.Helper()
	store, err := recorder.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "decisions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(applicantID string, approved bool, score int, at time.Time) model.DecisionRecord {
	outcome := model.Outcome{Approved: true, Offer: &model.Offer{TermMonths: 12, APR: 8.99, MonthlyPayment: 100}}
	if !approved {
		outcome = model.Outcome{Approved: false, Decline: &model.Decline{Reason: "Credit score below minimum threshold (550)"}}
	}
	return model.DecisionRecord{
		CreatedAt: at,
		Application: model.Application{
			ApplicantID: applicantID,
			Age:         40,
		},
		Decision: model.Decision{
			ApplicantID: applicantID,
			CreditScore: score,
			Outcome:     outcome,
			CreatedAt:   at,
		},
		ModelVersion: "1.0.0-test",
	}
}

func TestSQLiteStoreAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("app-%03d", i), true, 700+i, base.Add(time.Duration(i)*time.Minute))
		id, err := store.Append(ctx, rec)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	}

	t.Run("most recent first, limited", func(t *testing.T) {
		records, err := store.Recent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "app-004", records[0].Application.ApplicantID)
		assert.Equal(t, "app-003", records[1].Application.ApplicantID)
		assert.Equal(t, "app-002", records[2].Application.ApplicantID)
	})

	t.Run("documents round-trip intact", func(t *testing.T) {
		records, err := store.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, records, 1)
		rec := records[0]
		assert.Equal(t, 40, rec.Application.Age)
		assert.Equal(t, 704, rec.Decision.CreditScore)
		assert.True(t, rec.Decision.Outcome.Approved)
		require.NotNil(t, rec.Decision.Outcome.Offer)
		assert.Equal(t, 12, rec.Decision.Outcome.Offer.TermMonths)
		assert.Equal(t, "1.0.0-test", rec.ModelVersion)
		assert.True(t, rec.CreatedAt.Equal(base.Add(4*time.Minute)))
	})

	t.Run("limit larger than the log", func(t *testing.T) {
		records, err := store.Recent(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, records, 5)
	})
}

func TestSQLiteStoreStats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("empty log", func(t *testing.T) {
		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.True(t, stats.Connected)
		assert.Equal(t, int64(0), stats.TotalDecisions)
		assert.Equal(t, "no decisions recorded yet", stats.Message)
	})

	t.Run("aggregates over the full log", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := store.Append(ctx, testRecord("app-a", true, 800, now))
		require.NoError(t, err)
		_, err = store.Append(ctx, testRecord("app-b", true, 700, now))
		require.NoError(t, err)
		_, err = store.Append(ctx, testRecord("app-c", false, 400, now))
		require.NoError(t, err)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.True(t, stats.Connected)
		assert.Equal(t, int64(3), stats.TotalDecisions)
		assert.Equal(t, 0.667, stats.ApprovalRate)
		assert.Equal(t, float64(633), stats.AvgCreditScore)
		assert.Empty(t, stats.Message)
	})
}

func TestSQLiteStorePing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
