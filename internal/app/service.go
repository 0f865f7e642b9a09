// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/claritypay/clarity/internal/adapters/recorder"
	"github.com/claritypay/clarity/internal/domain/explain"
	"github.com/claritypay/clarity/internal/domain/model"
	"github.com/claritypay/clarity/internal/domain/policy"
	"github.com/claritypay/clarity/internal/domain/scoring"
	"github.com/claritypay/clarity/internal/domain/validate"
	"github.com/claritypay/clarity/pkg/logger"
	"github.com/claritypay/clarity/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultRecentLimit    = 10
	defaultMaxRecentLimit = 100
)

// Service runs the decision pipeline: validate -> score -> policy ->
// explain -> confidence, with best-effort recording on the side.
type Service struct {
	mu sync.RWMutex

	scorer   *scoring.Scorer
	ranker   *explain.Ranker
	recorder *recorder.Recorder

	explainMode    explain.Mode
	maxRecentLimit int

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorer sets the scoring adapter. The service will not start without one.
func WithScorer(s *scoring.Scorer) Option {
	return func(svc *Service) {
		svc.scorer = s
	}
}

// WithRecorder sets the decision recorder.
func WithRecorder(r *recorder.Recorder) Option {
	return func(svc *Service) {
		if r != nil {
			svc.recorder = r
		}
	}
}

// WithExplainMode selects the explanation strategy.
func WithExplainMode(mode explain.Mode) Option {
	return func(svc *Service) {
		svc.explainMode = mode
	}
}

// WithMaxRecentLimit caps the limit accepted by Recent.
func WithMaxRecentLimit(limit int) Option {
	return func(svc *Service) {
		if limit > 0 {
			svc.maxRecentLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	svc := &Service{
		explainMode:    explain.ModeHeuristic,
		maxRecentLimit: defaultMaxRecentLimit,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if !s.scorer.Loaded() {
		return scoring.ErrModelUnavailable
	}
	if s.recorder == nil {
		s.recorder = recorder.New(nil, recorder.WithLogger(s.logger.Named("recorder")))
	}

	s.ranker = explain.NewRanker(
		explain.WithMode(s.explainMode),
		explain.WithAttributor(s.scorer),
	)

	s.recorder.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "decision service started",
		logger.String("model_version", s.scorer.Version()),
		logger.String("explain_mode", string(s.ranker.Mode())),
		logger.Bool("store_connected", s.recorder.Connected(ctx)),
	)
	return nil
}

// Stop gracefully shuts down the service, draining pending record writes.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping decision service...")
	if err := s.recorder.Close(); err != nil {
		s.logger.Error(ctx, "error closing recorder", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "decision service stopped")
}

// Predict runs one application through the full pipeline. Validation and
// scoring errors surface to the caller; recording failures never do.
func (s *Service) Predict(ctx context.Context, app model.Application) (model.Decision, error) {
	vec, err := validate.Application(app)
	if err != nil {
		metrics.RecordValidationError()
		return model.Decision{}, err
	}

	scoreStart := time.Now()
	probability, err := s.scorer.Score(ctx, vec)
	metrics.RecordScoringLatency(float64(time.Since(scoreStart).Milliseconds()))
	if err != nil {
		metrics.RecordScoringError()
		return model.Decision{}, fmt.Errorf("scoring application %s: %w", app.ApplicantID, err)
	}

	score := policy.Score(probability)
	tier, outcome := policy.Evaluate(score, app.PurchaseAmount)

	decision := model.Decision{
		ApplicantID:        app.ApplicantID,
		DefaultProbability: round4(probability),
		CreditScore:        score,
		Tier:               tier,
		Outcome:            outcome,
		Explanation:        s.ranker.Rank(ctx, vec),
		Confidence:         policy.Confidence(probability),
		ModelVersion:       s.scorer.Version(),
		CreatedAt:          time.Now().UTC(),
	}

	decision.Recorded = s.recorder.Record(ctx, model.DecisionRecord{
		CreatedAt:    decision.CreatedAt,
		Application:  app,
		Decision:     decision,
		ModelVersion: decision.ModelVersion,
	})

	metrics.RecordDecision(string(tier), outcome.Approved)
	metrics.RecordCreditScore(score)

	s.logger.Debug(ctx, "decision issued",
		logger.String("applicant_id", app.ApplicantID),
		logger.Int("credit_score", score),
		logger.String("tier", string(tier)),
		logger.Bool("approved", outcome.Approved),
		logger.Bool("recorded", decision.Recorded),
	)
	return decision, nil
}

// Health reports readiness of the model artifact and the decision store.
func (s *Service) Health(ctx context.Context) model.HealthStatus {
	return model.HealthStatus{
		ModelLoaded:    s.scorer.Loaded(),
		StoreConnected: s.recorder != nil && s.recorder.Connected(ctx),
		Version:        s.scorer.Version(),
	}
}

// Stats recomputes aggregate statistics over all recorded decisions.
func (s *Service) Stats(ctx context.Context) model.AggregateStats {
	if s.recorder == nil {
		return model.AggregateStats{Connected: false, Message: "decision store not configured"}
	}
	return s.recorder.Stats(ctx)
}

// Recent returns up to limit decision records, most recent first. A
// non-positive limit falls back to the default; the configured cap always
// applies.
func (s *Service) Recent(ctx context.Context, limit int) ([]model.DecisionRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > s.maxRecentLimit {
		limit = s.maxRecentLimit
	}
	if s.recorder == nil {
		return []model.DecisionRecord{}, nil
	}
	return s.recorder.Recent(ctx, limit)
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
