// Package drift compares the marginal feature distributions of a reference
// dataset against current traffic using the population stability index.
// It runs as an offline batch job, never on the request path.
package drift

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Default detector configuration constants.
const (
	defaultBinCount     = 10
	defaultPSIThreshold = 0.2
	defaultMinShare     = 0

	// smoothing keeps empty bins from producing infinite PSI terms.
	smoothing = 1e-4
)

// Dataset is a row-major batch of feature values with a named, ordered schema.
type Dataset struct {
	Features []string
	Rows     [][]float64
}

// Column extracts the values for one feature index across all rows.
func (d Dataset) Column(i int) []float64 {
	col := make([]float64, len(d.Rows))
	for r, row := range d.Rows {
		col[r] = row[i]
	}
	return col
}

// FeatureReport holds one feature's drift statistic.
type FeatureReport struct {
	Name    string  `json:"feature"`
	PSI     float64 `json:"psi"`
	Drifted bool    `json:"drifted"`
}

// Summary is the result of one detection run. A new run overwrites the
// previous summary; summaries are never merged.
type Summary struct {
	Timestamp       time.Time       `json:"timestamp"`
	ReferenceSize   int             `json:"reference_size"`
	CurrentSize     int             `json:"current_size"`
	DriftDetected   bool            `json:"drift_detected"`
	Threshold       float64         `json:"psi_threshold"`
	DriftedFeatures int             `json:"drifted_features"`
	Features        []FeatureReport `json:"features,omitempty"`
}

// Detector computes per-feature PSI and the overall drift flag.
type Detector struct {
	binCount  int
	threshold float64
	minShare  float64
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithBinCount sets the number of histogram bins anchored on the reference range.
func WithBinCount(n int) Option {
	return func(d *Detector) {
		if n > 1 {
			d.binCount = n
		}
	}
}

// WithPSIThreshold sets the PSI value at which a feature counts as drifted.
func WithPSIThreshold(t float64) Option {
	return func(d *Detector) {
		if t > 0 {
			d.threshold = t
		}
	}
}

// WithMinDriftShare sets the fraction of features that must drift before the
// overall flag is raised. Zero means any single drifted feature raises it.
func WithMinDriftShare(share float64) Option {
	return func(d *Detector) {
		if share >= 0 && share <= 1 {
			d.minShare = share
		}
	}
}

// NewDetector builds a Detector with default configuration.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		binCount:  defaultBinCount,
		threshold: defaultPSIThreshold,
		minShare:  defaultMinShare,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect compares reference and current distributions feature by feature.
// Malformed inputs fail with ErrBadInput rather than reporting a false
// "no drift" result.
func (d *Detector) Detect(_ context.Context, reference, current Dataset) (Summary, error) {
	if err := checkInputs(reference, current); err != nil {
		return Summary{}, err
	}

	// Map current columns by name so column order differences are tolerated.
	currentIndex := make(map[string]int, len(current.Features))
	for i, name := range current.Features {
		currentIndex[name] = i
	}

	reports := make([]FeatureReport, 0, len(reference.Features))
	drifted := 0
	for i, name := range reference.Features {
		j, ok := currentIndex[name]
		if !ok {
			return Summary{}, fmt.Errorf("%w: current dataset is missing feature %q", ErrBadInput, name)
		}
		psi := d.psi(reference.Column(i), current.Column(j))
		report := FeatureReport{Name: name, PSI: psi, Drifted: psi >= d.threshold}
		if report.Drifted {
			drifted++
		}
		reports = append(reports, report)
	}

	share := float64(drifted) / float64(len(reference.Features))
	return Summary{
		Timestamp:       time.Now().UTC(),
		ReferenceSize:   len(reference.Rows),
		CurrentSize:     len(current.Rows),
		DriftDetected:   drifted > 0 && share >= d.minShare,
		Threshold:       d.threshold,
		DriftedFeatures: drifted,
		Features:        reports,
	}, nil
}

func checkInputs(reference, current Dataset) error {
	if len(reference.Features) == 0 {
		return fmt.Errorf("%w: reference dataset declares no features", ErrBadInput)
	}
	if len(reference.Rows) == 0 {
		return fmt.Errorf("%w: reference dataset is empty", ErrBadInput)
	}
	if len(current.Rows) == 0 {
		return fmt.Errorf("%w: current dataset is empty", ErrBadInput)
	}
	for r, row := range reference.Rows {
		if len(row) != len(reference.Features) {
			return fmt.Errorf("%w: reference row %d has %d values, schema has %d features", ErrBadInput, r, len(row), len(reference.Features))
		}
	}
	for r, row := range current.Rows {
		if len(row) != len(current.Features) {
			return fmt.Errorf("%w: current row %d has %d values, schema has %d features", ErrBadInput, r, len(row), len(current.Features))
		}
	}
	return nil
}

// psi computes the population stability index over equal-width bins anchored
// on the reference min/max. Current values outside the reference range fall
// into the first or last bin.
func (d *Detector) psi(reference, current []float64) float64 {
	lo, hi := reference[0], reference[0]
	for _, v := range reference {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		// Constant reference feature: a single bin, so any current value in
		// range contributes nothing and out-of-range mass shows up fully.
		hi = lo + 1
	}

	refProps := binProportions(reference, lo, hi, d.binCount)
	curProps := binProportions(current, lo, hi, d.binCount)

	psi := 0.0
	for b := 0; b < d.binCount; b++ {
		r := math.Max(refProps[b], smoothing)
		c := math.Max(curProps[b], smoothing)
		psi += (c - r) * math.Log(c/r)
	}
	return psi
}

func binProportions(values []float64, lo, hi float64, bins int) []float64 {
	counts := make([]float64, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range values {
		b := int((v - lo) / width)
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	total := float64(len(values))
	for b := range counts {
		counts[b] /= total
	}
	return counts
}
