package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

var (
	standardMultiplier = decimal.NewFromFloat(0.01)
	enhancedMultiplier = decimal.NewFromFloat(0.011)
)

// PensionMultiplier returns the FERS pension multiplier: 1.1% for retiring
// at 62 or later with at least 20 years of service, 1.0% otherwise.
func PensionMultiplier(retirementAge int, serviceYears decimal.Decimal) decimal.Decimal {
	if retirementAge >= 62 && serviceYears.GreaterThanOrEqual(decimal.NewFromInt(20)) {
		return enhancedMultiplier
	}
	return standardMultiplier
}

// RegularEligibility classifies an (age, years-of-service) pair into exactly
// one eligibility state, evaluated in priority order: unreduced immediate,
// MRA+10 reduced immediate, deferred only, ineligible. The explanation is
// informational; downstream math keys off the status and reduction percent.
func RegularEligibility(age int, serviceYears decimal.Decimal, mra int) domain.EligibilityVerdict {
	age = domain.ClampIntMin(age, 0)
	serviceYears = domain.CoerceDecimal(serviceYears, decimal.Zero)
	if mra <= 0 {
		mra = 57
	}

	five := decimal.NewFromInt(5)
	ten := decimal.NewFromInt(10)
	twenty := decimal.NewFromInt(20)
	thirty := decimal.NewFromInt(30)

	switch {
	case (age >= 62 && serviceYears.GreaterThanOrEqual(five)) ||
		(age >= 60 && serviceYears.GreaterThanOrEqual(twenty)) ||
		(age >= mra && serviceYears.GreaterThanOrEqual(thirty)):
		return domain.EligibilityVerdict{
			Status:      domain.EligibilityUnreducedImmediate,
			Explanation: "Eligible for an immediate, unreduced annuity",
		}
	case age >= mra && serviceYears.GreaterThanOrEqual(ten):
		return domain.EligibilityVerdict{
			Status:           domain.EligibilityMRA10,
			ReductionPercent: MRA10ReductionPercent(age, mra),
			Explanation:      "Eligible under MRA+10 with an age reduction",
		}
	case serviceYears.GreaterThanOrEqual(five):
		return domain.EligibilityVerdict{
			Status:      domain.EligibilityDeferredOnly,
			Explanation: "Eligible for a deferred annuity only",
		}
	default:
		return domain.EligibilityVerdict{
			Status:      domain.EligibilityIneligible,
			Explanation: "Not eligible for a FERS annuity",
		}
	}
}

// MRA10ReductionPercent returns the MRA+10 age reduction as a percentage:
// zero at 62 or later (or below the MRA, where MRA+10 doesn't apply), and a
// flat 5% per full year under 62 otherwise. This deliberately preserves the
// simplified linear rule rather than the actuarial reduction table.
func MRA10ReductionPercent(annuityStartAge, mra int) decimal.Decimal {
	if annuityStartAge >= 62 || annuityStartAge < mra {
		return decimal.Zero
	}
	yearsUnder62 := 62 - annuityStartAge
	return decimal.NewFromInt(int64(yearsUnder62) * 5)
}

// EarliestImmediateRetirementAge scans forward from the current age, with
// service accruing one year per year of age, until eligibility first reports
// an immediate annuity (reduced or not). Returns nil when no age up to
// maxAgeToCheck qualifies.
func EarliestImmediateRetirementAge(currentAge int, serviceYears decimal.Decimal, mra, maxAgeToCheck int) *int {
	currentAge = domain.ClampIntMin(currentAge, 0)
	serviceYears = domain.CoerceDecimal(serviceYears, decimal.Zero)

	for age := currentAge; age <= maxAgeToCheck; age++ {
		accrued := serviceYears.Add(decimal.NewFromInt(int64(age - currentAge)))
		if RegularEligibility(age, accrued, mra).Immediate() {
			result := age
			return &result
		}
	}
	return nil
}

// ComparePensionPaths computes annual, monthly and lifetime pension values
// for staying federal until the planned retirement age versus leaving early
// with a deferred annuity. All numeric inputs degrade to zero-valued results
// on malformed data; the function never errors.
//
// The leave-early path freezes service at current service plus the deferred
// years assumption, always applies the 1.0% multiplier (a deferred annuity
// never earns the age-62 enhancement), and starts at the MRA.
func ComparePensionPaths(p domain.FERSParams) domain.PensionComparison {
	high3 := domain.CoerceDecimal(p.High3Salary, decimal.Zero)
	service := domain.CoerceDecimal(p.TotalServiceYears(), decimal.Zero)
	mra := p.MinimumRetirementAge
	if mra <= 0 {
		mra = 57
	}
	endAge := p.PensionEndAge
	if endAge <= 0 {
		endAge = 90
	}

	// Stay-federal path: optionally project the service accrued between now
	// and the planned retirement age.
	stayService := service
	if p.IncludeFutureService && p.RetirementAge > p.CurrentAge {
		stayService = stayService.Add(decimal.NewFromInt(int64(p.RetirementAge - p.CurrentAge)))
	}
	stayMultiplier := PensionMultiplier(p.RetirementAge, stayService)
	stayAnnual := high3.Mul(stayMultiplier).Mul(stayService)
	stay := domain.PensionPath{
		ServiceYears:   stayService,
		Multiplier:     stayMultiplier,
		StartAge:       p.RetirementAge,
		AnnualPension:  stayAnnual,
		MonthlyPension: stayAnnual.Div(twelve),
		LifetimeValue:  lifetimeValue(stayAnnual, p.RetirementAge, endAge),
	}

	// Leave-early path: deferred annuity at the MRA with a frozen multiplier.
	leaveService := service.Add(decimal.NewFromInt(int64(domain.ClampIntMin(p.DeferredYears, 0))))
	leaveAnnual := high3.Mul(standardMultiplier).Mul(leaveService)
	leave := domain.PensionPath{
		ServiceYears:   leaveService,
		Multiplier:     standardMultiplier,
		StartAge:       mra,
		AnnualPension:  leaveAnnual,
		MonthlyPension: leaveAnnual.Div(twelve),
		LifetimeValue:  lifetimeValue(leaveAnnual, mra, endAge),
	}

	return domain.PensionComparison{
		StayFederal:  stay,
		LeaveEarly:   leave,
		BreakEvenAge: breakEvenAge(p, stay, leave),
	}
}

// lifetimeValue is the undiscounted pension total from the start age through
// the end age.
func lifetimeValue(annual decimal.Decimal, startAge, endAge int) decimal.Decimal {
	years := endAge - startAge
	if years <= 0 {
		return decimal.Zero
	}
	return annual.Mul(decimal.NewFromInt(int64(years)))
}

// breakEvenAge finds the age at which cumulative earnings under the stay
// path overtake the leave-early path, by linear extrapolation from the
// annual pension differential. The leave path's head start is the pension it
// collects between the MRA and the stay path's start, plus any private-sector
// salary advantage accumulated before the stay path retires. Nil when the
// annual differential or the accumulated gap is non-positive (the stay path
// either never catches up or was never behind).
func breakEvenAge(p domain.FERSParams, stay, leave domain.PensionPath) *decimal.Decimal {
	annualDiff := stay.AnnualPension.Sub(leave.AnnualPension)
	if !annualDiff.IsPositive() {
		return nil
	}

	headStartYears := stay.StartAge - leave.StartAge
	if headStartYears < 0 {
		headStartYears = 0
	}
	gap := leave.AnnualPension.Mul(decimal.NewFromInt(int64(headStartYears)))

	if p.PrivateComparison != nil {
		privateSalary := domain.CoerceDecimal(p.PrivateComparison.AnnualSalary, decimal.Zero)
		federalSalary := domain.CoerceDecimal(p.High3Salary, decimal.Zero)
		workingYears := p.RetirementAge - p.CurrentAge - domain.ClampIntMin(p.DeferredYears, 0)
		if workingYears > 0 {
			gap = gap.Add(privateSalary.Sub(federalSalary).Mul(decimal.NewFromInt(int64(workingYears))))
		}
	}

	if !gap.IsPositive() {
		return nil
	}

	age := decimal.NewFromInt(int64(stay.StartAge)).Add(gap.Div(annualDiff))
	return &age
}

// FormatEligibility renders a verdict for human consumption, including the
// reduction when one applies.
func FormatEligibility(v domain.EligibilityVerdict) string {
	if v.Status == domain.EligibilityMRA10 && v.ReductionPercent.IsPositive() {
		return fmt.Sprintf("%s (%s%% reduction)", v.Explanation, v.ReductionPercent.StringFixed(0))
	}
	return v.Explanation
}
