package scoring

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/claritypay/clarity/internal/domain/model"
)

// Artifact is the serialized form of the trained classifier: a standardized
// logistic model keyed to the canonical feature order. Training and feature
// engineering happen elsewhere; only this shape matters here.
type Artifact struct {
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Means        []float64 `json:"means"`
	StdDevs      []float64 `json:"std_devs"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LoadArtifact reads and validates a model artifact from path. Any failure
// here is a startup fault; the service must not serve predictions without a
// loaded artifact.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArtifact, err)
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Artifact) check() error {
	n := len(a.Features)
	if n == 0 {
		return fmt.Errorf("%w: no features declared", ErrBadArtifact)
	}
	if len(a.Means) != n || len(a.StdDevs) != n || len(a.Coefficients) != n {
		return fmt.Errorf("%w: means/std_devs/coefficients must all have %d entries", ErrBadArtifact, n)
	}
	if n != len(model.FeatureNames) {
		return fmt.Errorf("%w: artifact has %d features, pipeline expects %d", ErrBadArtifact, n, len(model.FeatureNames))
	}
	for i, name := range a.Features {
		if name != model.FeatureNames[i] {
			return fmt.Errorf("%w: feature %d is %q, expected %q", ErrBadArtifact, i, name, model.FeatureNames[i])
		}
	}
	for i, sd := range a.StdDevs {
		if sd <= 0 {
			return fmt.Errorf("%w: std_dev for %q must be positive", ErrBadArtifact, a.Features[i])
		}
	}
	return nil
}
