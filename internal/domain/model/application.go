// Package model contains domain models passed between layers.
package model

// FeatureNames is the canonical positional ordering of applicant features.
// The scoring artifact and the explanation ranker both index feature vectors
// by this order; changing it invalidates any previously trained artifact.
var FeatureNames = []string{
	"age",
	"annual_income",
	"debt_to_income_ratio",
	"num_credit_lines",
	"num_late_payments",
	"credit_utilization",
	"months_since_last_delinquency",
	"num_credit_inquiries",
	"purchase_amount",
}

// Positional indices into a FeatureVector, matching FeatureNames.
const (
	FeatureAge = iota
	FeatureAnnualIncome
	FeatureDebtToIncome
	FeatureCreditLines
	FeatureLatePayments
	FeatureUtilization
	FeatureMonthsSinceDelinquency
	FeatureInquiries
	FeaturePurchaseAmount

	FeatureCount
)

// Application is the immutable input to the decision pipeline.
// Fields mirror the JSON schema for POST /predict.
type Application struct {
	ApplicantID                string  `json:"applicant_id"`
	Age                        int     `json:"age"`
	AnnualIncome               float64 `json:"annual_income"`
	DebtToIncomeRatio          float64 `json:"debt_to_income_ratio"`
	NumCreditLines             int     `json:"num_credit_lines"`
	NumLatePayments            int     `json:"num_late_payments"`
	CreditUtilization          float64 `json:"credit_utilization"`
	MonthsSinceLastDelinquency int     `json:"months_since_last_delinquency"`
	NumCreditInquiries         int     `json:"num_credit_inquiries"`
	PurchaseAmount             float64 `json:"purchase_amount"`
}

// FeatureVector is an ordered slice of applicant features indexed per FeatureNames.
type FeatureVector []float64

// Features produces the positional feature vector for scoring and explanation.
func (a Application) Features() FeatureVector {
	return FeatureVector{
		float64(a.Age),
		a.AnnualIncome,
		a.DebtToIncomeRatio,
		float64(a.NumCreditLines),
		float64(a.NumLatePayments),
		a.CreditUtilization,
		float64(a.MonthsSinceLastDelinquency),
		float64(a.NumCreditInquiries),
		a.PurchaseAmount,
	}
}
