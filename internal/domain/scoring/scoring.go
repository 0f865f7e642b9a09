// Package scoring wraps the trained default-risk classifier behind a stable
// input -> probability contract. The artifact is loaded once at process start
// and treated as read-only afterwards; concurrent scoring needs no locking.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/claritypay/clarity/internal/domain/model"
)

// Scorer maps a validated feature vector to a default probability in [0, 1].
type Scorer struct {
	artifact *Artifact
}

// NewScorer wraps a loaded artifact. A nil artifact yields a scorer that
// fails every call with ErrModelUnavailable.
func NewScorer(artifact *Artifact) *Scorer {
	return &Scorer{artifact: artifact}
}

// Version reports the artifact's model version tag, or empty when unloaded.
func (s *Scorer) Version() string {
	if s == nil || s.artifact == nil {
		return ""
	}
	return s.artifact.Version
}

// Loaded reports whether a usable artifact is present.
func (s *Scorer) Loaded() bool {
	return s != nil && s.artifact != nil
}

// Score computes the default probability for a feature vector. It is
// deterministic for a fixed artifact and input.
func (s *Scorer) Score(ctx context.Context, vec model.FeatureVector) (float64, error) {
	contributions, err := s.Contributions(ctx, vec)
	if err != nil {
		return 0, err
	}
	z := s.artifact.Intercept
	for _, c := range contributions {
		z += c
	}
	return sigmoid(z), nil
}

// Contributions returns the signed per-feature contributions to the risk
// logit, indexed per model.FeatureNames. Positive values push the default
// probability up. Used by the attribution-mode explanation ranker.
func (s *Scorer) Contributions(_ context.Context, vec model.FeatureVector) ([]float64, error) {
	if !s.Loaded() {
		return nil, ErrModelUnavailable
	}
	a := s.artifact
	if len(vec) != len(a.Features) {
		return nil, fmt.Errorf("feature vector has %d values, artifact expects %d", len(vec), len(a.Features))
	}
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = a.Coefficients[i] * (v - a.Means[i]) / a.StdDevs[i]
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
