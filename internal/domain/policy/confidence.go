package policy

import (
	"math"

	"github.com/claritypay/clarity/internal/domain/model"
)

// Confidence band widths around the 0.5 decision boundary.
const (
	highConfidenceDistance   = 0.3
	mediumConfidenceDistance = 0.15
)

// Confidence derives the qualitative confidence label from the distance
// between the default probability and 0.5. Probabilities far from the
// boundary are unambiguous; those near it are not.
func Confidence(probability float64) model.Confidence {
	switch d := math.Abs(probability - 0.5); {
	case d > highConfidenceDistance:
		return model.ConfidenceHigh
	case d > mediumConfidenceDistance:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
