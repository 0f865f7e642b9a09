package recorder_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/claritypay/clarity/internal/adapters/recorder"
	"github.com/claritypay/clarity/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// reopen gives a fresh read handle on a store file after the recorder that
// owned the original handle has been closed.
func reopen(t *testing.T, path string) *recorder.SQLiteStore {
	t.Helper()
	store, err := recorder.NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecorderPersistsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "decisions.db")
	store, err := recorder.NewSQLiteStore(ctx, path)
	require.NoError(t, err)

	rec := recorder.New(store, recorder.WithWriterCount(1))
	rec.Start(ctx)

	now := time.Now().UTC()
	accepted := rec.Record(ctx, testRecord("app-write", true, 760, now))
	assert.True(t, accepted)

	// Close drains the queue and releases the store handle.
	require.NoError(t, rec.Close())

	records, err := reopen(t, path).Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "app-write", records[0].Application.ApplicantID)
}

func TestRecorderDrainsAfterStartContextCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.db")
	store, err := recorder.NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)

	// The server passes its signal context to Start; shutdown cancels it
	// before Close. Accepted records must still reach the store.
	ctx, cancel := context.WithCancel(context.Background())
	rec := recorder.New(store, recorder.WithWriterCount(1))
	rec.Start(ctx)
	cancel()

	accepted := rec.Record(context.Background(), testRecord("app-shutdown", true, 720, time.Now().UTC()))
	assert.True(t, accepted)
	require.NoError(t, rec.Close())

	records, err := reopen(t, path).Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "app-shutdown", records[0].Application.ApplicantID)
}

func TestRecorderNeverBlocksOnFullQueue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	// One slot and no running writers: the second record has nowhere to go.
	rec := recorder.New(store, recorder.WithQueueSize(1))

	first := rec.Record(ctx, testRecord("app-1", true, 700, time.Now().UTC()))
	second := rec.Record(ctx, testRecord("app-2", true, 700, time.Now().UTC()))

	assert.True(t, first)
	assert.False(t, second, "a full queue drops instead of blocking")
}

func TestRecorderDegradedWithoutStore(t *testing.T) {
	ctx := context.Background()
	rec := recorder.New(nil)
	rec.Start(ctx)

	t.Run("record is refused", func(t *testing.T) {
		accepted := rec.Record(ctx, testRecord("app-x", true, 700, time.Now().UTC()))
		assert.False(t, accepted)
	})

	t.Run("recent is empty, not an error", func(t *testing.T) {
		records, err := rec.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("stats report the store as not configured", func(t *testing.T) {
		stats := rec.Stats(ctx)
		assert.False(t, stats.Connected)
		assert.Equal(t, "decision store not configured", stats.Message)
	})

	t.Run("not connected", func(t *testing.T) {
		assert.False(t, rec.Connected(ctx))
	})

	require.NoError(t, rec.Close())
}

func TestRecorderRefusesAfterClose(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	rec := recorder.New(store)
	rec.Start(ctx)
	require.NoError(t, rec.Close())

	accepted := rec.Record(ctx, testRecord("app-late", true, 700, time.Now().UTC()))
	assert.False(t, accepted)

	records, err := rec.Recent(ctx, 10)
	require.ErrorIs(t, err, recorder.ErrClosed)
	assert.Nil(t, records)

	// A second close is a no-op.
	require.NoError(t, rec.Close())
}

func TestRecorderDrainsBacklogOnClose(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "decisions.db")
	store, err := recorder.NewSQLiteStore(ctx, path)
	require.NoError(t, err)

	rec := recorder.New(store, recorder.WithWriterCount(2), recorder.WithQueueSize(64))
	rec.Start(ctx)

	for i := 0; i < 20; i++ {
		assert.True(t, rec.Record(ctx, testRecord("app-rt", i%2 == 0, 600+i, time.Now().UTC())))
	}
	require.NoError(t, rec.Close())

	readStore := reopen(t, path)
	records, err := readStore.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, records, 20)

	stats, err := readStore.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), stats.TotalDecisions)
	assert.Equal(t, 0.5, stats.ApprovalRate)
}

func TestRecorderConnected(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	rec := recorder.New(store)
	assert.True(t, rec.Connected(ctx))
}
