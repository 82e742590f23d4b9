package domain

import (
	"github.com/shopspring/decimal"
)

// TSPYearPoint is one row of a year-by-year projection. Points are produced
// fresh on every projection call, ordered ascending by age from the current
// age through the retirement age inclusive, and never mutated afterwards.
type TSPYearPoint struct {
	Age                   int             `json:"age"`
	Balance               decimal.Decimal `json:"balance"`
	AfterTaxValue         decimal.Decimal `json:"after_tax_value"`
	RealBalance           decimal.Decimal `json:"real_balance"`
	RealAfterTaxValue     decimal.Decimal `json:"real_after_tax_value"`
	EmployeeContributions decimal.Decimal `json:"employee_contributions"`
	EmployerContributions decimal.Decimal `json:"employer_contributions"`
	Salary                decimal.Decimal `json:"salary"`
	DeferralLimit         decimal.Decimal `json:"deferral_limit"`
}

// TSPProjection is the result of the simple fixed-contribution projector.
type TSPProjection struct {
	ProjectedBalance   decimal.Decimal `json:"projected_balance"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalGrowth        decimal.Decimal `json:"total_growth"`
	AfterTaxValue      decimal.Decimal `json:"after_tax_value"`
	YearlyData         []TSPYearPoint  `json:"yearly_data"`
}

// DualBucketProjection is the result of the full salary-driven projector,
// tracking traditional and Roth balances separately.
type DualBucketProjection struct {
	TraditionalBalance decimal.Decimal `json:"traditional_balance"`
	RothBalance        decimal.Decimal `json:"roth_balance"`
	ProjectedBalance   decimal.Decimal `json:"projected_balance"`
	AfterTaxValue      decimal.Decimal `json:"after_tax_value"`
	RealBalance        decimal.Decimal `json:"real_balance"`
	RealAfterTaxValue  decimal.Decimal `json:"real_after_tax_value"`
	TotalEmployee      decimal.Decimal `json:"total_employee_contributions"`
	TotalEmployer      decimal.Decimal `json:"total_employer_contributions"`
	WeightedReturn     decimal.Decimal `json:"weighted_return"`
	YearlyData         []TSPYearPoint  `json:"yearly_data"`
}

// EligibilityStatus classifies a (age, years-of-service) pair. Exactly one
// status applies to any pair.
type EligibilityStatus string

const (
	EligibilityUnreducedImmediate EligibilityStatus = "unreduced_immediate"
	EligibilityMRA10              EligibilityStatus = "mra_10_reduced"
	EligibilityDeferredOnly       EligibilityStatus = "deferred_only"
	EligibilityIneligible         EligibilityStatus = "ineligible"
)

// EligibilityVerdict is the outcome of the FERS eligibility state machine.
// Explanation is informational only; downstream calculation keys off Status
// and ReductionPercent.
type EligibilityVerdict struct {
	Status           EligibilityStatus `json:"status"`
	ReductionPercent decimal.Decimal   `json:"reduction_percent"`
	Explanation      string            `json:"explanation"`
}

// Immediate reports whether the verdict allows an annuity to start now
// (reduced or not).
func (v EligibilityVerdict) Immediate() bool {
	return v.Status == EligibilityUnreducedImmediate || v.Status == EligibilityMRA10
}

// PensionPath is one side of the stay-vs-leave comparison.
type PensionPath struct {
	ServiceYears   decimal.Decimal `json:"service_years"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	StartAge       int             `json:"start_age"`
	AnnualPension  decimal.Decimal `json:"annual_pension"`
	MonthlyPension decimal.Decimal `json:"monthly_pension"`
	LifetimeValue  decimal.Decimal `json:"lifetime_value"`
}

// PensionComparison is the full stay-federal vs leave-early analysis.
// BreakEvenAge is nil when the stay path never overtakes the leave path.
type PensionComparison struct {
	StayFederal  PensionPath      `json:"stay_federal"`
	LeaveEarly   PensionPath      `json:"leave_early"`
	BreakEvenAge *decimal.Decimal `json:"break_even_age,omitempty"`
}

// BridgeAnalysis quantifies the funding needed to survive the years between
// the desired FIRE age and a later pension start. The requirement is naive:
// shortfall times months, with no discounting.
type BridgeAnalysis struct {
	YearsToBridge          int             `json:"years_to_bridge"`
	MonthlyShortfall       decimal.Decimal `json:"monthly_shortfall"`
	RequiredBridgeAssets   decimal.Decimal `json:"required_bridge_assets"`
	PassiveIncomeAtFireAge decimal.Decimal `json:"passive_income_at_fire_age"`
}

// FireGapResult compares projected passive income to the income goal.
type FireGapResult struct {
	MonthlyWithdrawal  decimal.Decimal `json:"monthly_withdrawal"`
	PensionMonthly     decimal.Decimal `json:"pension_monthly"`
	TotalPassiveIncome decimal.Decimal `json:"total_passive_income"`
	FireIncomeGoal     decimal.Decimal `json:"fire_income_goal"`
	MonthlyGap         decimal.Decimal `json:"monthly_gap"`
	IsFireReady        bool            `json:"is_fire_ready"`
	ConfidenceLevel    string          `json:"confidence_level"`
	Bridge             *BridgeAnalysis `json:"bridge,omitempty"`
}

// PercentileSummary holds interpolated order-statistic percentiles of a
// sampled outcome distribution.
type PercentileSummary struct {
	P10 decimal.Decimal `json:"p10"`
	P50 decimal.Decimal `json:"p50"`
	P90 decimal.Decimal `json:"p90"`
}

// SimulationResult aggregates a Monte Carlo run. Probabilities are fractions
// in [0,1]. Percentile bands are nil when no paths produced a usable sample
// (e.g. a not-applicable short-circuit).
type SimulationResult struct {
	NumSimulations     int                `json:"num_simulations"`
	Seed               int64              `json:"seed"`
	SuccessRate        decimal.Decimal    `json:"success_rate"`   // funds lasted to end age
	GoalMetRate        decimal.Decimal    `json:"goal_met_rate"`  // FIRE goal met at desired age
	RetirementBalances *PercentileSummary `json:"retirement_balances,omitempty"`
	FireAgeBalances    *PercentileSummary `json:"fire_age_balances,omitempty"`
}

// OptimizationCandidate is one parameter combination surfaced by the grid
// search, together with the earliest age at which passive income meets the
// goal under those parameters.
type OptimizationCandidate struct {
	RetirementAge       int             `json:"retirement_age"`
	ContributionPercent decimal.Decimal `json:"contribution_percent"`
	MonthlyExpenses     decimal.Decimal `json:"monthly_expenses"`
	EarliestFireAge     *int            `json:"earliest_fire_age,omitempty"`
	DistanceFromBase    decimal.Decimal `json:"distance_from_base"`
}

// Report is the engine's full deterministic output for one scenario.
type Report struct {
	Scenario             *Scenario            `json:"scenario"`
	TSP                  DualBucketProjection `json:"tsp"`
	Pension              PensionComparison    `json:"pension"`
	Eligibility          EligibilityVerdict   `json:"eligibility"`
	EarliestImmediateAge *int                 `json:"earliest_immediate_age,omitempty"`
	FireGap              FireGapResult        `json:"fire_gap"`
}
