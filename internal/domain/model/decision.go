package model

import "time"

// Tier is the risk classification bucket derived from the credit score.
type Tier string

// Risk tiers, highest credit quality first.
const (
	TierPrime     Tier = "Prime"
	TierNearPrime Tier = "Near-Prime"
	TierSubprime  Tier = "Subprime"
	TierHighRisk  Tier = "High Risk"
)

// Confidence is the qualitative confidence label attached to a decision.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Offer holds the loan terms extended to an approved applicant.
type Offer struct {
	TermMonths     int     `json:"term_months"`
	APR            float64 `json:"apr"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

// Decline explains a rejected application.
type Decline struct {
	Reason string `json:"reason"`
}

// Outcome is the sum-typed result of policy evaluation: exactly one of
// Offer or Decline is set, matching the Approved flag.
type Outcome struct {
	Approved bool     `json:"approved"`
	Offer    *Offer   `json:"offer,omitempty"`
	Decline  *Decline `json:"decline,omitempty"`
}

// Factor is one human-readable explanation entry with its directional impact.
type Factor struct {
	Name   string  `json:"factor"`
	Value  float64 `json:"value"`
	Impact string  `json:"impact"`
}

// Decision is the immutable result of running one application through the
// pipeline. It is produced exactly once per application and never mutated.
type Decision struct {
	ApplicantID        string     `json:"applicant_id"`
	DefaultProbability float64    `json:"default_probability"`
	CreditScore        int        `json:"credit_score"`
	Tier               Tier       `json:"risk_tier"`
	Outcome            Outcome    `json:"outcome"`
	Explanation        []Factor   `json:"explanation"`
	Confidence         Confidence `json:"confidence"`
	ModelVersion       string     `json:"model_version"`
	Recorded           bool       `json:"recorded"`
	CreatedAt          time.Time  `json:"created_at"`
}

// DecisionRecord pairs a decision with its source application for the
// append-only decision log. The ID is assigned by the store on append.
type DecisionRecord struct {
	ID           string      `json:"id,omitempty"`
	CreatedAt    time.Time   `json:"timestamp"`
	Application  Application `json:"application"`
	Decision     Decision    `json:"decision"`
	ModelVersion string      `json:"model_version"`
}

// AggregateStats is a view over all recorded decisions, recomputed from the
// store on every read rather than maintained incrementally.
type AggregateStats struct {
	Connected      bool    `json:"connected"`
	TotalDecisions int64   `json:"total_decisions"`
	ApprovalRate   float64 `json:"approval_rate"`
	AvgCreditScore float64 `json:"average_credit_score"`
	Message        string  `json:"message,omitempty"`
}

// HealthStatus reports readiness of the two external collaborators.
type HealthStatus struct {
	ModelLoaded    bool   `json:"model_loaded"`
	StoreConnected bool   `json:"store_connected"`
	Version        string `json:"version"`
}
