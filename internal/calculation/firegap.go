package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// Confidence tiers for a positive FIRE gap, as surplus relative to the goal.
var (
	confidenceHighThreshold   = decimal.NewFromFloat(0.25)
	confidenceMediumThreshold = decimal.NewFromFloat(0.10)
)

// MonthlyWithdrawal converts a balance to sustainable monthly income at the
// given safe withdrawal rate.
func MonthlyWithdrawal(balance, swr decimal.Decimal) decimal.Decimal {
	balance = domain.CoerceDecimal(balance, decimal.Zero)
	swr = domain.CoerceDecimal(swr, decimal.Zero)
	return balance.Mul(swr).Div(twelve)
}

// PassiveIncomeAt computes total monthly passive income at a given age for a
// given balance: portfolio withdrawal, pension and Social Security when their
// start ages have been reached, plus the other income streams.
func PassiveIncomeAt(age int, balance, pensionMonthly, swr decimal.Decimal, fire domain.FIREParams) decimal.Decimal {
	income := MonthlyWithdrawal(balance, swr)
	if age >= fire.PensionStartAge {
		income = income.Add(domain.CoerceDecimal(pensionMonthly, decimal.Zero))
	}
	if fire.SocialSecurityStartAge > 0 && age >= fire.SocialSecurityStartAge {
		income = income.Add(domain.CoerceDecimal(fire.SocialSecurityMonthly, decimal.Zero))
	}
	return income.Add(domain.CoerceDecimal(fire.OtherMonthlyIncome(), decimal.Zero))
}

// AnalyzeFireGap compares projected passive income against the monthly
// income goal at the desired FIRE age. When the pension starts later than the
// FIRE age, the result additionally carries a bridge estimate: the naive,
// undiscounted assets needed to cover the pre-pension shortfall.
func AnalyzeFireGap(projectedBalance, pensionMonthly decimal.Decimal, fire domain.FIREParams, swr decimal.Decimal) domain.FireGapResult {
	projectedBalance = domain.CoerceDecimal(projectedBalance, decimal.Zero)
	pensionMonthly = domain.CoerceDecimal(pensionMonthly, decimal.Zero)
	swr = domain.CoerceDecimal(swr, decimal.Zero)
	goal := domain.CoerceDecimal(fire.MonthlyIncomeGoal, decimal.Zero)

	withdrawal := MonthlyWithdrawal(projectedBalance, swr)
	pensionStarted := fire.PensionStartAge <= fire.FireAge
	pensionNow := decimal.Zero
	if pensionStarted {
		pensionNow = pensionMonthly
	}

	total := withdrawal.Add(pensionNow).Add(domain.CoerceDecimal(fire.OtherMonthlyIncome(), decimal.Zero))
	gap := total.Sub(goal)

	result := domain.FireGapResult{
		MonthlyWithdrawal:  withdrawal,
		PensionMonthly:     pensionNow,
		TotalPassiveIncome: total,
		FireIncomeGoal:     goal,
		MonthlyGap:         gap,
		IsFireReady:        !gap.IsNegative(),
		ConfidenceLevel:    confidenceLevel(gap, goal),
	}

	if !pensionStarted {
		result.Bridge = bridgeAnalysis(total, goal, fire)
	}

	return result
}

// confidenceLevel tiers the surplus as a share of the goal. Only meaningful
// when the gap is non-negative; a shortfall is always "low".
func confidenceLevel(gap, goal decimal.Decimal) string {
	if gap.IsNegative() || !goal.IsPositive() {
		return "low"
	}
	ratio := gap.Div(goal)
	switch {
	case ratio.GreaterThanOrEqual(confidenceHighThreshold):
		return "high"
	case ratio.GreaterThanOrEqual(confidenceMediumThreshold):
		return "medium"
	default:
		return "low"
	}
}

// bridgeAnalysis sizes the gap years between the FIRE age and the pension
// start: years times twelve times the monthly shortfall during that window.
func bridgeAnalysis(incomeWithoutPension, goal decimal.Decimal, fire domain.FIREParams) *domain.BridgeAnalysis {
	years := fire.PensionStartAge - fire.FireAge
	if years <= 0 {
		return nil
	}

	shortfall := goal.Sub(incomeWithoutPension)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}

	return &domain.BridgeAnalysis{
		YearsToBridge:          years,
		MonthlyShortfall:       shortfall,
		RequiredBridgeAssets:   shortfall.Mul(twelve).Mul(decimal.NewFromInt(int64(years))),
		PassiveIncomeAtFireAge: incomeWithoutPension,
	}
}
