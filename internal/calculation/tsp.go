package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// WeightedAnnualReturn blends per-fund expected returns by allocation weight.
// A malformed allocation (zero or negative total, negative weight) falls back
// to the default allocation rather than dividing by zero.
func WeightedAnnualReturn(allocation domain.FundAllocation, returns domain.FundRates) decimal.Decimal {
	return blendFundRates(allocation, returns)
}

// WeightedAnnualStdDev blends per-fund standard deviations the same way.
// Treating the blend as a simple weighted average ignores cross-fund
// correlation; the simulator wants a single annualized sigma, not a
// covariance model.
func WeightedAnnualStdDev(allocation domain.FundAllocation, stdDevs domain.FundRates) decimal.Decimal {
	return blendFundRates(allocation, stdDevs)
}

func blendFundRates(allocation domain.FundAllocation, rates domain.FundRates) decimal.Decimal {
	if !allocation.IsValid() {
		allocation = domain.DefaultFundAllocation()
	}
	total := allocation.Total()

	weighted := allocation.GFund.Mul(rates.GFund).
		Add(allocation.FFund.Mul(rates.FFund)).
		Add(allocation.CFund.Mul(rates.CFund)).
		Add(allocation.SFund.Mul(rates.SFund)).
		Add(allocation.IFund.Mul(rates.IFund))

	// Normalize by the actual total so allocations that sum to something
	// other than 100 still blend sensibly.
	return weighted.Div(total)
}

// ProjectTSPGrowth is the simple fixed-contribution projector. Growth
// compounds monthly; within each month the contribution is added first, then
// one month of growth applies. YearlyData holds years+1 points from the
// current age through the retirement age inclusive; a zero or negative
// horizon yields the single starting point with no growth and no
// contributions.
func ProjectTSPGrowth(startBalance, monthlyContribution, annualReturn decimal.Decimal, years int, treatment domain.TaxTreatment, currentAge int, retirementTaxRate decimal.Decimal) domain.TSPProjection {
	startBalance = domain.CoerceDecimal(startBalance, decimal.Zero)
	monthlyContribution = domain.CoerceDecimal(monthlyContribution, decimal.Zero)
	retirementTaxRate = clampRate(retirementTaxRate)
	if years < 0 {
		years = 0
	}

	monthlyReturn := annualReturn.Div(twelve)
	balance := startBalance
	totalContributions := decimal.Zero

	yearly := make([]domain.TSPYearPoint, 0, years+1)
	yearly = append(yearly, domain.TSPYearPoint{
		Age:           currentAge,
		Balance:       balance,
		AfterTaxValue: afterTaxValue(balance, decimal.Zero, treatment, retirementTaxRate),
	})

	for y := 0; y < years; y++ {
		yearContrib := decimal.Zero
		for m := 0; m < 12; m++ {
			balance = balance.Add(monthlyContribution)
			yearContrib = yearContrib.Add(monthlyContribution)
			balance = balance.Mul(one.Add(monthlyReturn))
		}
		totalContributions = totalContributions.Add(yearContrib)

		yearly = append(yearly, domain.TSPYearPoint{
			Age:                   currentAge + y + 1,
			Balance:               balance,
			AfterTaxValue:         afterTaxValue(balance, decimal.Zero, treatment, retirementTaxRate),
			EmployeeContributions: yearContrib,
		})
	}

	return domain.TSPProjection{
		ProjectedBalance:   balance,
		TotalContributions: totalContributions,
		TotalGrowth:        balance.Sub(startBalance).Sub(totalContributions),
		AfterTaxValue:      afterTaxValue(balance, decimal.Zero, treatment, retirementTaxRate),
		YearlyData:         yearly,
	}
}

// afterTaxValue converts nominal balances to an after-tax equivalent: Roth
// money is already taxed, traditional money is scaled by (1 - retirement
// rate). In the dual-bucket projector the traditional argument carries the
// pre-tax bucket and balance carries the Roth bucket.
func afterTaxValue(balance, traditional decimal.Decimal, treatment domain.TaxTreatment, retirementTaxRate decimal.Decimal) decimal.Decimal {
	if treatment == domain.TaxTreatmentRoth {
		return balance.Add(traditional.Mul(one.Sub(retirementTaxRate)))
	}
	return balance.Add(traditional).Mul(one.Sub(retirementTaxRate))
}

// EffectiveDeferralLimit returns the annual employee deferral cap for a
// participant of the given age: the base limit, plus the catch-up allowance
// once age reaches the catch-up threshold.
func EffectiveDeferralLimit(p domain.TSPParams, age int) decimal.Decimal {
	limit := domain.CoerceDecimal(p.AnnualDeferralLimit, decimal.Zero)
	if p.CatchUpAge > 0 && age >= p.CatchUpAge {
		limit = limit.Add(domain.CoerceDecimal(p.CatchUpLimit, decimal.Zero))
	}
	return limit
}

// AgencyMatchRate returns the employer contribution as a fraction of salary
// under the simplified federal rule: 1% automatic, dollar-for-dollar on the
// first 3% the employee defers, fifty cents on the dollar for the next 2%.
// Each piece is gated by its own toggle; the combined maximum is 5%.
func AgencyMatchRate(p domain.TSPParams) decimal.Decimal {
	rate := decimal.Zero
	if p.IncludeAutomatic {
		rate = rate.Add(decimal.NewFromFloat(0.01))
	}
	if p.IncludeMatch {
		cp := domain.CoerceDecimal(p.ContributionPercent, decimal.Zero)
		firstTier := decimal.Min(cp, decimal.NewFromFloat(0.03))
		secondTier := decimal.Min(decimal.Max(cp.Sub(decimal.NewFromFloat(0.03)), decimal.Zero), decimal.NewFromFloat(0.02))
		rate = rate.Add(firstTier).Add(secondTier.Mul(decimal.NewFromFloat(0.5)))
	}
	return rate
}

// AnnualContributions computes one projection-year's clamped employee
// deferral (as credited to the account) and employer contribution for a
// given salary and age. This is the same contribution policy the dual-bucket
// projector applies month by month, collapsed to an annual figure for the
// Monte Carlo paths.
func AnnualContributions(p domain.TSPParams, salary decimal.Decimal, age int) (employee, employer decimal.Decimal) {
	salary = domain.CoerceDecimal(salary, decimal.Zero)
	desired := salary.Mul(domain.CoerceDecimal(p.ContributionPercent, decimal.Zero))
	gross := decimal.Min(desired, EffectiveDeferralLimit(p, age))

	employee = gross
	if p.Treatment == domain.TaxTreatmentRoth {
		employee = gross.Mul(one.Sub(clampRate(p.CurrentTaxRate)))
	}
	employer = salary.Mul(AgencyMatchRate(p))
	return employee, employer
}

// ProjectDualBucket runs the full salary-driven projection, tracking the
// pre-tax and Roth buckets separately. Salary compounds annually; the
// employee's percent-of-salary deferral is clamped monthly against the
// cumulative annual limit so a late-year contribution can never push the
// annual total over the cap, even when that truncates the month below the
// nominal percentage. Employer money always lands in the pre-tax bucket.
func ProjectDualBucket(p domain.TSPParams) domain.DualBucketProjection {
	startBalance := domain.CoerceDecimal(p.CurrentBalance, decimal.Zero)
	salary := domain.CoerceDecimal(p.AnnualSalary, decimal.Zero)
	salaryGrowth := p.SalaryGrowthRate
	if salaryGrowth.IsNegative() {
		salaryGrowth = decimal.Zero
	}
	currentTaxRate := clampRate(p.CurrentTaxRate)
	retirementTaxRate := clampRate(p.RetirementTaxRate)
	inflation := domain.CoerceDecimal(p.InflationRate, decimal.Zero)

	weightedReturn := WeightedAnnualReturn(p.Allocation, p.FundReturns)
	monthlyReturn := weightedReturn.Div(twelve)
	years := p.ProjectionYears()

	var traditional, roth decimal.Decimal
	if p.Treatment == domain.TaxTreatmentRoth {
		roth = startBalance
	} else {
		traditional = startBalance
	}

	totalEmployee := decimal.Zero
	totalEmployer := decimal.Zero

	yearly := make([]domain.TSPYearPoint, 0, years+1)
	yearly = append(yearly, domain.TSPYearPoint{
		Age:               p.CurrentAge,
		Balance:           traditional.Add(roth),
		AfterTaxValue:     afterTaxValue(roth, traditional, domain.TaxTreatmentRoth, retirementTaxRate),
		RealBalance:       traditional.Add(roth),
		RealAfterTaxValue: afterTaxValue(roth, traditional, domain.TaxTreatmentRoth, retirementTaxRate),
		DeferralLimit:     EffectiveDeferralLimit(p, p.CurrentAge),
	})

	matchRate := AgencyMatchRate(p)

	for y := 0; y < years; y++ {
		age := p.CurrentAge + y
		limit := EffectiveDeferralLimit(p, age)
		monthlyDesired := salary.Mul(domain.CoerceDecimal(p.ContributionPercent, decimal.Zero)).Div(twelve)
		monthlyEmployer := salary.Mul(matchRate).Div(twelve)

		yearEmployee := decimal.Zero
		yearEmployer := decimal.Zero
		deferredYTD := decimal.Zero

		for m := 0; m < 12; m++ {
			gross := monthlyDesired
			if room := limit.Sub(deferredYTD); gross.GreaterThan(room) {
				gross = decimal.Max(room, decimal.Zero)
			}
			deferredYTD = deferredYTD.Add(gross)

			if p.Treatment == domain.TaxTreatmentRoth {
				// A Roth deferral costs more take-home pay for the same
				// payroll percentage; credit the after-tax equivalent.
				credited := gross.Mul(one.Sub(currentTaxRate))
				roth = roth.Add(credited)
				yearEmployee = yearEmployee.Add(credited)
			} else {
				traditional = traditional.Add(gross)
				yearEmployee = yearEmployee.Add(gross)
			}

			traditional = traditional.Add(monthlyEmployer)
			yearEmployer = yearEmployer.Add(monthlyEmployer)

			growthFactor := one.Add(monthlyReturn)
			traditional = traditional.Mul(growthFactor)
			roth = roth.Mul(growthFactor)
		}

		totalEmployee = totalEmployee.Add(yearEmployee)
		totalEmployer = totalEmployer.Add(yearEmployer)

		nominal := traditional.Add(roth)
		afterTax := afterTaxValue(roth, traditional, domain.TaxTreatmentRoth, retirementTaxRate)
		deflator := one.Add(inflation).Pow(decimal.NewFromInt(int64(y + 1)))

		yearly = append(yearly, domain.TSPYearPoint{
			Age:                   age + 1,
			Balance:               nominal,
			AfterTaxValue:         afterTax,
			RealBalance:           nominal.Div(deflator),
			RealAfterTaxValue:     afterTax.Div(deflator),
			EmployeeContributions: yearEmployee,
			EmployerContributions: yearEmployer,
			Salary:                salary,
			DeferralLimit:         limit,
		})

		salary = salary.Mul(one.Add(salaryGrowth))
	}

	nominal := traditional.Add(roth)
	afterTax := afterTaxValue(roth, traditional, domain.TaxTreatmentRoth, retirementTaxRate)
	deflator := one.Add(inflation).Pow(decimal.NewFromInt(int64(years)))

	return domain.DualBucketProjection{
		TraditionalBalance: traditional,
		RothBalance:        roth,
		ProjectedBalance:   nominal,
		AfterTaxValue:      afterTax,
		RealBalance:        nominal.Div(deflator),
		RealAfterTaxValue:  afterTax.Div(deflator),
		TotalEmployee:      totalEmployee,
		TotalEmployer:      totalEmployer,
		WeightedReturn:     weightedReturn,
		YearlyData:         yearly,
	}
}

// clampRate confines a tax rate to [0, 1).
func clampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	if rate.GreaterThanOrEqual(one) {
		return decimal.NewFromFloat(0.99)
	}
	return rate
}
