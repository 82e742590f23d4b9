package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// Candidate grids for the brute-force search. The specific offsets are part
// of the observable behavior: ages up to five years later, contribution
// bumps up to ten points, and modest spending cuts.
var (
	ageOffsets          = []int{0, 1, 2, 3, 5}
	contributionOffsets = []float64{0, 0.02, 0.05, 0.10}
	expenseFactors      = []float64{1.0, 0.95, 0.90}

	maxContributionPercent = decimal.NewFromFloat(0.50)
	maxOptimizerResults    = 3
)

// OptimizeScenario runs a brute-force grid search over retirement age,
// contribution percent and spending level, scoring each candidate by the
// earliest age at which projected passive income meets the goal. It returns
// up to three candidates strictly better than the baseline (strictly lower
// earliest FIRE age), preferring smaller parameter changes on ties, and an
// empty slice when no candidate improves on the baseline. A nil scenario or
// a non-positive goal yields no candidates rather than an error.
func OptimizeScenario(scenario *domain.Scenario) []domain.OptimizationCandidate {
	if scenario == nil || !scenario.FIRE.MonthlyIncomeGoal.IsPositive() {
		return nil
	}

	baseline := evaluateCandidate(scenario, scenario.TSP.RetirementAge, scenario.TSP.ContributionPercent, scenario.FIRE.MonthlyIncomeGoal)

	var candidates []domain.OptimizationCandidate
	seen := make(map[string]bool)

	for _, ageOff := range ageOffsets {
		age := scenario.TSP.RetirementAge + ageOff
		if age < scenario.TSP.CurrentAge+1 {
			age = scenario.TSP.CurrentAge + 1
		}
		for _, cpOff := range contributionOffsets {
			cp := domain.CoerceDecimal(scenario.TSP.ContributionPercent, decimal.Zero).
				Add(decimal.NewFromFloat(cpOff))
			if cp.GreaterThan(maxContributionPercent) {
				cp = maxContributionPercent
			}
			for _, factor := range expenseFactors {
				expenses := scenario.FIRE.MonthlyIncomeGoal.Mul(decimal.NewFromFloat(factor))

				key := candidateKey(age, cp, expenses)
				if seen[key] {
					continue
				}
				seen[key] = true

				cand := evaluateCandidate(scenario, age, cp, expenses)
				cand.DistanceFromBase = candidateDistance(scenario, age, cp, factor)
				candidates = append(candidates, cand)
			}
		}
	}

	improved := candidates[:0]
	for _, c := range candidates {
		if c.EarliestFireAge == nil {
			continue
		}
		if baseline.EarliestFireAge != nil && *c.EarliestFireAge >= *baseline.EarliestFireAge {
			continue
		}
		improved = append(improved, c)
	}

	sort.SliceStable(improved, func(i, j int) bool {
		if *improved[i].EarliestFireAge != *improved[j].EarliestFireAge {
			return *improved[i].EarliestFireAge < *improved[j].EarliestFireAge
		}
		return improved[i].DistanceFromBase.LessThan(improved[j].DistanceFromBase)
	})

	if len(improved) > maxOptimizerResults {
		improved = improved[:maxOptimizerResults]
	}
	return improved
}

// evaluateCandidate re-runs the deterministic projectors for one parameter
// triple and finds the earliest qualifying FIRE age under it.
func evaluateCandidate(scenario *domain.Scenario, retirementAge int, contributionPercent, monthlyExpenses decimal.Decimal) domain.OptimizationCandidate {
	tsp := scenario.TSP
	tsp.RetirementAge = retirementAge
	tsp.ContributionPercent = contributionPercent

	fers := scenario.FERS
	fers.RetirementAge = retirementAge

	fire := scenario.FIRE
	fire.MonthlyIncomeGoal = monthlyExpenses
	// A FERS annuity cannot flow while still employed.
	if fire.PensionStartAge < retirementAge {
		fire.PensionStartAge = retirementAge
	}

	projection := ProjectDualBucket(tsp)
	pensionMonthly := ComparePensionPaths(fers).StayFederal.MonthlyPension

	return domain.OptimizationCandidate{
		RetirementAge:       retirementAge,
		ContributionPercent: contributionPercent,
		MonthlyExpenses:     monthlyExpenses,
		EarliestFireAge:     earliestQualifyingAge(projection.YearlyData, pensionMonthly, fire),
	}
}

// earliestQualifyingAge scans the yearly projection in age order and returns
// the first age at which passive income meets the goal, or nil when no point
// qualifies.
func earliestQualifyingAge(yearly []domain.TSPYearPoint, pensionMonthly decimal.Decimal, fire domain.FIREParams) *int {
	swr := domain.CoerceDecimal(fire.SafeWithdrawalRate, decimal.Zero)
	for _, point := range yearly {
		income := PassiveIncomeAt(point.Age, point.Balance, pensionMonthly, swr, fire)
		if !income.LessThan(fire.MonthlyIncomeGoal) {
			age := point.Age
			return &age
		}
	}
	return nil
}

// candidateDistance measures how far a candidate strays from the baseline
// parameters; the tie-break prefers the smallest change.
func candidateDistance(scenario *domain.Scenario, age int, cp decimal.Decimal, expenseFactor float64) decimal.Decimal {
	ageDist := decimal.NewFromInt(int64(abs(age - scenario.TSP.RetirementAge)))
	cpDist := cp.Sub(domain.CoerceDecimal(scenario.TSP.ContributionPercent, decimal.Zero)).Abs().Mul(hundred)
	expenseDist := decimal.NewFromFloat(1 - expenseFactor).Mul(hundred)
	return ageDist.Add(cpDist).Add(expenseDist)
}

func candidateKey(age int, cp, expenses decimal.Decimal) string {
	return cp.StringFixed(4) + "|" + expenses.StringFixed(2) + "|" + decimal.NewFromInt(int64(age)).String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
