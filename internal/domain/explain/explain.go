// Package explain ranks the factors most relevant to a credit decision.
//
// Two strategies share one output contract of at most three ranked factors
// with a directional impact: a fixed-priority rule set over specific features
// (heuristic, the authoritative default) and a per-feature attribution over
// the scoring artifact's contributions.
package explain

import (
	"context"
	"math"
	"sort"

	"github.com/claritypay/clarity/internal/domain/model"
)

// MaxFactors bounds every explanation, regardless of strategy.
const MaxFactors = 3

// Mode selects the explanation strategy.
type Mode string

const (
	ModeHeuristic   Mode = "heuristic"
	ModeAttribution Mode = "attribution"
)

// Heuristic rule thresholds.
const (
	dtiHighThreshold  = 0.5
	dtiLowThreshold   = 0.3
	latePaymentsLimit = 2
	utilHighThreshold = 0.7
	utilLowThreshold  = 0.3
)

// Contributions below this magnitude are noise, not explanations.
const minContribution = 1e-9

// Attributor exposes signed per-feature contributions to the risk logit.
// Satisfied by *scoring.Scorer.
type Attributor interface {
	Contributions(ctx context.Context, vec model.FeatureVector) ([]float64, error)
}

// Ranker produces ranked explanation factors for a feature vector.
type Ranker struct {
	mode       Mode
	attributor Attributor
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithMode selects the explanation strategy. Unknown modes keep the default.
func WithMode(mode Mode) Option {
	return func(r *Ranker) {
		if mode == ModeHeuristic || mode == ModeAttribution {
			r.mode = mode
		}
	}
}

// WithAttributor supplies the contribution source required by attribution
// mode.
func WithAttributor(a Attributor) Option {
	return func(r *Ranker) {
		if a != nil {
			r.attributor = a
		}
	}
}

// NewRanker builds a Ranker, defaulting to heuristic mode.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{mode: ModeHeuristic}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode reports the active strategy.
func (r *Ranker) Mode() Mode {
	return r.mode
}

// Rank returns at most MaxFactors factors for the vector, ranked by
// relevance. The result is empty only when no rule or attribution crosses
// its threshold.
func (r *Ranker) Rank(ctx context.Context, vec model.FeatureVector) []model.Factor {
	if r.mode == ModeAttribution && r.attributor != nil {
		if factors, err := r.attribution(ctx, vec); err == nil {
			return factors
		}
		// Attribution needs a loaded artifact; fall back to rules otherwise.
	}
	return heuristic(vec)
}

// heuristic evaluates the fixed rule set in priority order: debt-to-income
// band, late-payment count, credit utilization band.
func heuristic(vec model.FeatureVector) []model.Factor {
	factors := make([]model.Factor, 0, MaxFactors)

	dti := vec[model.FeatureDebtToIncome]
	switch {
	case dti > dtiHighThreshold:
		factors = append(factors, model.Factor{Name: "High debt-to-income ratio", Value: dti, Impact: "negative"})
	case dti < dtiLowThreshold:
		factors = append(factors, model.Factor{Name: "Low debt-to-income ratio", Value: dti, Impact: "positive"})
	}

	late := vec[model.FeatureLatePayments]
	switch {
	case late > latePaymentsLimit:
		factors = append(factors, model.Factor{Name: "Multiple late payments", Value: late, Impact: "negative"})
	case late == 0:
		factors = append(factors, model.Factor{Name: "No late payments", Value: late, Impact: "positive"})
	}

	util := vec[model.FeatureUtilization]
	switch {
	case util > utilHighThreshold:
		factors = append(factors, model.Factor{Name: "High credit utilization", Value: util, Impact: "negative"})
	case util < utilLowThreshold:
		factors = append(factors, model.Factor{Name: "Low credit utilization", Value: util, Impact: "positive"})
	}

	if len(factors) > MaxFactors {
		factors = factors[:MaxFactors]
	}
	return factors
}

// attribution ranks features by the magnitude of their signed contribution
// to the risk logit.
func (r *Ranker) attribution(ctx context.Context, vec model.FeatureVector) ([]model.Factor, error) {
	contributions, err := r.attributor.Contributions(ctx, vec)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		index        int
		contribution float64
	}
	candidates := make([]ranked, 0, len(contributions))
	for i, c := range contributions {
		if math.Abs(c) < minContribution {
			continue
		}
		candidates = append(candidates, ranked{index: i, contribution: c})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return math.Abs(candidates[i].contribution) > math.Abs(candidates[j].contribution)
	})
	if len(candidates) > MaxFactors {
		candidates = candidates[:MaxFactors]
	}

	factors := make([]model.Factor, 0, len(candidates))
	for _, c := range candidates {
		impact := "increases risk"
		if c.contribution < 0 {
			impact = "decreases risk"
		}
		factors = append(factors, model.Factor{
			Name:   model.FeatureNames[c.index],
			Value:  vec[c.index],
			Impact: impact,
		})
	}
	return factors, nil
}
