// Package policy converts default probabilities into credit scores, risk
// tiers, and loan terms. Everything here is a pure function: no randomness,
// no I/O, fully deterministic for a given input.
package policy

import (
	"math"

	"github.com/claritypay/clarity/internal/domain/model"
)

// Score scale and tier floors. Tiers are evaluated highest-first and form a
// total, non-overlapping partition of [0, 850].
const (
	MaxScore       = 850
	primeFloor     = 750
	nearPrimeFloor = 650
	subprimeFloor  = 550
)

// Per-tier terms. The payment multiplier folds the APR into the total owed,
// e.g. 1.0899 for 8.99%.
const (
	primeTermMonths     = 12
	primeAPR            = 8.99
	primeMultiplier     = 1.0899
	nearPrimeTermMonths = 6
	nearPrimeAPR        = 14.99
	nearPrimeMultiplier = 1.1499
	subprimeTermMonths  = 4
	subprimeAPR         = 22.99
	subprimeMultiplier  = 1.2299
)

// DeclineReasonBelowThreshold is the reason attached to every High Risk decline.
const DeclineReasonBelowThreshold = "Credit score below minimum threshold (550)"

// Score maps a default probability onto the 0-850 credit score scale. The
// mapping is monotonically non-increasing in the probability.
func Score(probability float64) int {
	s := math.Round((1 - probability) * MaxScore)
	if s < 0 {
		s = 0
	}
	if s > MaxScore {
		s = MaxScore
	}
	return int(s)
}

// Evaluate assigns the risk tier and loan terms for a credit score.
// Purchase amount only scales the payment; it never moves a tier boundary.
func Evaluate(score int, purchaseAmount float64) (model.Tier, model.Outcome) {
	switch {
	case score >= primeFloor:
		return model.TierPrime, offer(primeTermMonths, primeAPR, primeMultiplier, purchaseAmount)
	case score >= nearPrimeFloor:
		return model.TierNearPrime, offer(nearPrimeTermMonths, nearPrimeAPR, nearPrimeMultiplier, purchaseAmount)
	case score >= subprimeFloor:
		return model.TierSubprime, offer(subprimeTermMonths, subprimeAPR, subprimeMultiplier, purchaseAmount)
	default:
		return model.TierHighRisk, model.Outcome{
			Approved: false,
			Decline:  &model.Decline{Reason: DeclineReasonBelowThreshold},
		}
	}
}

func offer(termMonths int, apr, multiplier, purchaseAmount float64) model.Outcome {
	return model.Outcome{
		Approved: true,
		Offer: &model.Offer{
			TermMonths:     termMonths,
			APR:            apr,
			MonthlyPayment: round2(purchaseAmount * multiplier / float64(termMonths)),
		},
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
