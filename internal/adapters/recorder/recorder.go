package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/claritypay/clarity/internal/domain/model"
	"github.com/claritypay/clarity/pkg/logger"
	"github.com/claritypay/clarity/pkg/metrics"
)

// Default recorder configuration constants.
const (
	defaultQueueSize   = 1024
	defaultWriterCount = 2
)

// Recorder accepts decision records on a bounded queue and persists them on
// background writers. Record never blocks the caller: a full queue or a
// missing store drops the record, logs it, and counts a metric.
type Recorder struct {
	store   Store
	queue   chan model.DecisionRecord
	writers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithQueueSize bounds the in-memory record queue.
func WithQueueSize(size int) Option {
	return func(r *Recorder) {
		if size > 0 {
			r.queue = make(chan model.DecisionRecord, size)
		}
	}
}

// WithWriterCount sets the number of background writer goroutines.
func WithWriterCount(count int) Option {
	return func(r *Recorder) {
		if count > 0 {
			r.writers = count
		}
	}
}

// WithLogger sets a custom logger for the recorder.
func WithLogger(l logger.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// New builds a Recorder over store. A nil store puts the recorder in
// degraded no-op mode: decisions are still served, nothing is persisted.
func New(store Store, opts ...Option) *Recorder {
	r := &Recorder{
		store:   store,
		queue:   make(chan model.DecisionRecord, defaultQueueSize),
		writers: defaultWriterCount,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("recorder")
	}
	metrics.UpdateRecordQueueCapacity(cap(r.queue))
	metrics.UpdateRecordQueueSize(0)
	return r
}

// Start launches the background writers. A no-op on a storeless recorder.
func (r *Recorder) Start(ctx context.Context) {
	if r.store == nil {
		r.logger.Warn(ctx, "no decision store configured; records will not be persisted")
		return
	}
	for i := 0; i < r.writers; i++ {
		r.wg.Add(1)
		go r.writeLoop(ctx)
	}
}

// Record enqueues one record for persistence. It returns true when the
// record was accepted for writing, false when it was dropped. It never
// blocks and never fails the caller.
func (r *Recorder) Record(ctx context.Context, rec model.DecisionRecord) bool {
	if r.store == nil {
		metrics.RecordDropped()
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		metrics.RecordDropped()
		return false
	}

	select {
	case r.queue <- rec:
		metrics.RecordQueued()
		metrics.UpdateRecordQueueSize(len(r.queue))
		return true
	default:
		metrics.RecordDropped()
		r.logger.Warn(ctx, "record queue full, dropping decision record",
			logger.String("applicant_id", rec.Application.ApplicantID),
		)
		return false
	}
}

// writeLoop drains the queue until it is closed and empty. Writes are
// detached from the Start context: Close drains the backlog after the
// server's signal context has already been canceled.
func (r *Recorder) writeLoop(ctx context.Context) {
	defer r.wg.Done()
	ctx = context.WithoutCancel(ctx)
	for rec := range r.queue {
		metrics.UpdateRecordQueueSize(len(r.queue))
		start := time.Now()
		id, err := r.store.Append(ctx, rec)
		metrics.RecordWriteLatency(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.RecordWriteError()
			r.logger.Error(ctx, "failed to persist decision record",
				logger.String("applicant_id", rec.Application.ApplicantID),
				logger.Error(err),
			)
			continue
		}
		metrics.RecordWritten()
		r.logger.Debug(ctx, "decision record persisted",
			logger.String("record_id", id),
			logger.String("applicant_id", rec.Application.ApplicantID),
		)
	}
}

// Recent reads up to limit records, most recent first. Degraded mode returns
// an empty slice; a closed recorder returns ErrClosed.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]model.DecisionRecord, error) {
	if r.store == nil {
		return []model.DecisionRecord{}, nil
	}
	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	return r.store.Recent(ctx, limit)
}

// Stats reports aggregate statistics. Store faults degrade to a disconnected
// result instead of failing the caller.
func (r *Recorder) Stats(ctx context.Context) model.AggregateStats {
	if r.store == nil {
		return model.AggregateStats{Connected: false, Message: "decision store not configured"}
	}
	stats, err := r.store.Stats(ctx)
	if err != nil {
		r.logger.Error(ctx, "failed to compute aggregate stats", logger.Error(err))
		return model.AggregateStats{Connected: false, Message: "decision store unavailable"}
	}
	return stats
}

// Connected reports whether the store is configured and reachable.
func (r *Recorder) Connected(ctx context.Context) bool {
	return r.store != nil && r.store.Ping(ctx) == nil
}

// Close stops accepting records, drains the queue, and closes the store.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
