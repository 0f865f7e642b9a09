package drift_test

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/claritypay/clarity/internal/domain/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeDataset builds a deterministic two-feature dataset. Offset shifts every
// value of the second feature to simulate a distribution shift.
func makeDataset(n int, seed int64, offset float64) drift.Dataset {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{
			rng.NormFloat64()*10 + 50,
			rng.NormFloat64()*0.1 + 0.3 + offset,
		}
	}
	return drift.Dataset{Features: []string{"age", "credit_utilization"}, Rows: rows}
}

func TestDetectNoDrift(t *testing.T) {
	ctx := context.Background()
	reference := makeDataset(2000, 1, 0)
	current := makeDataset(1000, 2, 0)

	summary, err := drift.NewDetector().Detect(ctx, reference, current)
	require.NoError(t, err)

	assert.False(t, summary.DriftDetected)
	assert.Equal(t, 0, summary.DriftedFeatures)
	assert.Equal(t, 2000, summary.ReferenceSize)
	assert.Equal(t, 1000, summary.CurrentSize)
	assert.Equal(t, 0.2, summary.Threshold)
	require.Len(t, summary.Features, 2)
	for _, f := range summary.Features {
		assert.Less(t, f.PSI, 0.2, "feature %s should be stable", f.Name)
		assert.False(t, f.Drifted)
	}
}

func TestDetectIdenticalDatasets(t *testing.T) {
	ctx := context.Background()
	reference := makeDataset(500, 7, 0)

	summary, err := drift.NewDetector().Detect(ctx, reference, reference)
	require.NoError(t, err)

	assert.False(t, summary.DriftDetected)
	for _, f := range summary.Features {
		assert.InDelta(t, 0, f.PSI, 1e-9, "identical distributions have zero PSI")
	}
}

func TestDetectShiftedFeature(t *testing.T) {
	ctx := context.Background()
	reference := makeDataset(2000, 1, 0)
	current := makeDataset(1000, 2, 0.5) // utilization shifted well past the reference spread

	summary, err := drift.NewDetector().Detect(ctx, reference, current)
	require.NoError(t, err)

	assert.True(t, summary.DriftDetected, "a single drifted feature flags the run")
	assert.Equal(t, 1, summary.DriftedFeatures)

	byName := map[string]drift.FeatureReport{}
	for _, f := range summary.Features {
		byName[f.Name] = f
	}
	assert.False(t, byName["age"].Drifted)
	assert.True(t, byName["credit_utilization"].Drifted)
	assert.GreaterOrEqual(t, byName["credit_utilization"].PSI, 0.2)
}

func TestDetectMinDriftShare(t *testing.T) {
	ctx := context.Background()
	reference := makeDataset(2000, 1, 0)
	current := makeDataset(1000, 2, 0.5)

	detector := drift.NewDetector(drift.WithMinDriftShare(0.75))
	summary, err := detector.Detect(ctx, reference, current)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DriftedFeatures)
	assert.False(t, summary.DriftDetected, "one of two features is below the 0.75 share")
}

func TestDetectBadInputs(t *testing.T) {
	ctx := context.Background()
	detector := drift.NewDetector()
	good := makeDataset(10, 3, 0)

	t.Run("empty reference", func(t *testing.T) {
		_, err := detector.Detect(ctx, drift.Dataset{Features: good.Features}, good)
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})

	t.Run("empty current", func(t *testing.T) {
		_, err := detector.Detect(ctx, good, drift.Dataset{Features: good.Features})
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})

	t.Run("no features", func(t *testing.T) {
		_, err := detector.Detect(ctx, drift.Dataset{Rows: [][]float64{{1}}}, good)
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})

	t.Run("ragged rows", func(t *testing.T) {
		ragged := drift.Dataset{Features: []string{"a", "b"}, Rows: [][]float64{{1, 2}, {3}}}
		_, err := detector.Detect(ctx, ragged, good)
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})

	t.Run("missing feature in current", func(t *testing.T) {
		current := drift.Dataset{Features: []string{"age"}, Rows: [][]float64{{42}}}
		_, err := detector.Detect(ctx, good, current)
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})
}

func TestDetectConstantFeature(t *testing.T) {
	ctx := context.Background()
	constant := func(v float64, n int) drift.Dataset {
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = []float64{v}
		}
		return drift.Dataset{Features: []string{"age"}, Rows: rows}
	}

	t.Run("same constant", func(t *testing.T) {
		summary, err := drift.NewDetector().Detect(ctx, constant(30, 100), constant(30, 100))
		require.NoError(t, err)
		assert.False(t, summary.DriftDetected)
	})

	t.Run("shifted constant", func(t *testing.T) {
		summary, err := drift.NewDetector().Detect(ctx, constant(30, 100), constant(90, 100))
		require.NoError(t, err)
		assert.True(t, summary.DriftDetected)
	})
}

func TestDetectReordersCurrentColumns(t *testing.T) {
	ctx := context.Background()
	reference := makeDataset(500, 11, 0)

	// Same values, columns swapped in the current schema.
	swapped := drift.Dataset{Features: []string{"credit_utilization", "age"}}
	for _, row := range makeDataset(500, 12, 0).Rows {
		swapped.Rows = append(swapped.Rows, []float64{row[1], row[0]})
	}

	summary, err := drift.NewDetector().Detect(ctx, reference, swapped)
	require.NoError(t, err)
	assert.False(t, summary.DriftDetected, "column order must not matter")
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	features := []string{"age", "credit_utilization"}

	t.Run("well-formed file with extra columns", func(t *testing.T) {
		path := writeCSV(t, "applicant_id,age,credit_utilization,label\nx1,34,0.25,0\nx2,58,0.71,1\n")
		ds, err := drift.ReadCSV(path, features)
		require.NoError(t, err)
		assert.Equal(t, features, ds.Features)
		require.Len(t, ds.Rows, 2)
		assert.Equal(t, []float64{34, 0.25}, ds.Rows[0])
		assert.Equal(t, []float64{58, 0.71}, ds.Rows[1])
	})

	t.Run("missing feature column", func(t *testing.T) {
		path := writeCSV(t, "age,label\n34,0\n")
		_, err := drift.ReadCSV(path, features)
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})

	t.Run("non-numeric cell", func(t *testing.T) {
		path := writeCSV(t, "age,credit_utilization\nthirty,0.25\n")
		_, err := drift.ReadCSV(path, features)
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := drift.ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), features)
		assert.ErrorIs(t, err, drift.ErrBadInput)
	})
}
