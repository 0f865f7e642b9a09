// Package validate enforces applicant-field domain constraints before scoring.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/claritypay/clarity/internal/domain/model"
)

// Error reports the first field whose value falls outside its declared bound.
// Violations reject the whole application; values are never clamped.
type Error struct {
	Field      string
	Constraint string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

var noUpper = math.Inf(1)

// bound declares the inclusive range for a single feature.
type bound struct {
	name  string
	min   float64
	max   float64
	value func(model.Application) float64
}

// Bounds are evaluated in FeatureNames order so the first violation reported
// is deterministic for a given application.
var bounds = []bound{
	{"age", 18, 100, func(a model.Application) float64 { return float64(a.Age) }},
	{"annual_income", 0, noUpper, func(a model.Application) float64 { return a.AnnualIncome }},
	{"debt_to_income_ratio", 0, 5, func(a model.Application) float64 { return a.DebtToIncomeRatio }},
	{"num_credit_lines", 0, noUpper, func(a model.Application) float64 { return float64(a.NumCreditLines) }},
	{"num_late_payments", 0, noUpper, func(a model.Application) float64 { return float64(a.NumLatePayments) }},
	{"credit_utilization", 0, 2, func(a model.Application) float64 { return a.CreditUtilization }},
	{"months_since_last_delinquency", 0, noUpper, func(a model.Application) float64 { return float64(a.MonthsSinceLastDelinquency) }},
	{"num_credit_inquiries", 0, noUpper, func(a model.Application) float64 { return float64(a.NumCreditInquiries) }},
	{"purchase_amount", 0, noUpper, func(a model.Application) float64 { return a.PurchaseAmount }},
}

func (b bound) constraint() string {
	if math.IsInf(b.max, 1) {
		return fmt.Sprintf("must be at least %g", b.min)
	}
	return fmt.Sprintf("must be between %g and %g", b.min, b.max)
}

// Application checks every feature against its declared bound and, on
// success, produces the validated positional feature vector. The first
// violation fails with *Error naming the offending field; no partial
// scoring occurs.
func Application(app model.Application) (model.FeatureVector, error) {
	if strings.TrimSpace(app.ApplicantID) == "" {
		return nil, &Error{Field: "applicant_id", Constraint: "must not be blank"}
	}
	for _, b := range bounds {
		if v := b.value(app); v < b.min || v > b.max {
			return nil, &Error{Field: b.name, Constraint: b.constraint()}
		}
	}
	return app.Features(), nil
}
