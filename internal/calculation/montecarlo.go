package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

const (
	// MinSimulations is the floor applied to caller-supplied simulation
	// counts; zero or negative counts clamp here rather than erroring.
	MinSimulations = 100

	// pathSeedStride separates per-path seeds so paths are independent
	// streams under a single master seed.
	pathSeedStride int64 = 1_000_003

	// Annual returns are clamped to this band to keep pathological tails
	// out of the compounding.
	returnClampBand = 0.65
)

// SimulationConfig controls a Monte Carlo run. Zero values get usable
// defaults: the simulation count clamps to MinSimulations, the end age
// defaults to 95, and a zero seed is replaced with wall-clock time so
// repeated unseeded runs differ.
type SimulationConfig struct {
	NumSimulations int   `yaml:"num_simulations" json:"num_simulations"`
	EndAge         int   `yaml:"end_age" json:"end_age"`
	Seed           int64 `yaml:"seed" json:"seed"`
}

// pathOutcome is the per-path record; aggregated and then discarded.
type pathOutcome struct {
	retirementBalance decimal.Decimal
	fireAgeBalance    decimal.Decimal
	survived          bool
	goalMet           bool
}

// RunSimulation runs repeated randomized growth/withdrawal trajectories for
// the scenario and aggregates them into success probabilities and percentile
// bands at the retirement age and the desired FIRE age.
//
// Each simulated year is in exactly one of two phases. Accumulation (age
// below both the retirement age and the FIRE age): contribute for the year,
// then grow by a randomly drawn annual return. Decumulation (otherwise):
// once the FIRE age is reached, withdraw the inflation-escalated annual need
// net of pension, Social Security and other income; the path fails
// immediately if the balance would go negative, and the remainder grows by
// the drawn return.
//
// A nil scenario or a non-positive income goal short-circuits to a
// zero-probability, nil-band result rather than erroring.
func RunSimulation(scenario *domain.Scenario, config SimulationConfig) domain.SimulationResult {
	numSims := config.NumSimulations
	if numSims < MinSimulations {
		numSims = MinSimulations
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result := domain.SimulationResult{
		NumSimulations: numSims,
		Seed:           seed,
		SuccessRate:    decimal.Zero,
		GoalMetRate:    decimal.Zero,
	}
	if scenario == nil || !scenario.FIRE.MonthlyIncomeGoal.IsPositive() {
		return result
	}

	endAge := config.EndAge
	if endAge <= 0 {
		endAge = 95
	}
	if endAge < scenario.TSP.CurrentAge {
		endAge = scenario.TSP.CurrentAge
	}

	mean, _ := WeightedAnnualReturn(scenario.TSP.Allocation, scenario.TSP.FundReturns).Float64()
	stdDev, _ := WeightedAnnualStdDev(scenario.TSP.Allocation, scenario.TSP.FundStdDevs).Float64()

	outcomes := make([]pathOutcome, numSims)
	for i := 0; i < numSims; i++ {
		rng := NewSeededRand(seed + int64(i)*pathSeedStride)
		outcomes[i] = simulatePath(scenario, rng, mean, stdDev, endAge)
	}

	survived := 0
	goalMet := 0
	retirementBalances := make([]decimal.Decimal, 0, numSims)
	fireBalances := make([]decimal.Decimal, 0, numSims)
	for _, o := range outcomes {
		if o.survived {
			survived++
		}
		if o.goalMet {
			goalMet++
		}
		retirementBalances = append(retirementBalances, o.retirementBalance)
		fireBalances = append(fireBalances, o.fireAgeBalance)
	}

	total := decimal.NewFromInt(int64(numSims))
	result.SuccessRate = decimal.NewFromInt(int64(survived)).Div(total)
	result.GoalMetRate = decimal.NewFromInt(int64(goalMet)).Div(total)
	result.RetirementBalances = SummarizePercentiles(retirementBalances)
	result.FireAgeBalances = SummarizePercentiles(fireBalances)
	return result
}

// simulatePath walks one randomized trajectory from the current age to the
// end age.
func simulatePath(scenario *domain.Scenario, rng *SeededRand, mean, stdDev float64, endAge int) pathOutcome {
	tsp := scenario.TSP
	fire := scenario.FIRE

	balance := domain.CoerceDecimal(tsp.CurrentBalance, decimal.Zero)
	salary := domain.CoerceDecimal(tsp.AnnualSalary, decimal.Zero)
	inflation := domain.CoerceDecimal(tsp.InflationRate, decimal.Zero)
	pensionMonthly := stayFederalMonthlyPension(scenario)

	accumulationEnd := tsp.RetirementAge
	if fire.FireAge > 0 && fire.FireAge < accumulationEnd {
		accumulationEnd = fire.FireAge
	}

	outcome := pathOutcome{survived: true}
	annualNeed := fire.MonthlyIncomeGoal.Mul(twelve)

	for age := tsp.CurrentAge; age < endAge; age++ {
		if age == tsp.RetirementAge {
			outcome.retirementBalance = balance
		}
		if age == fire.FireAge {
			outcome.fireAgeBalance = balance
			outcome.goalMet = !PassiveIncomeAt(age, balance, pensionMonthly, fire.SafeWithdrawalRate, fire).
				LessThan(fire.MonthlyIncomeGoal)
		}

		annualReturn := drawAnnualReturn(rng, mean, stdDev)

		if age < accumulationEnd {
			employee, employer := AnnualContributions(tsp, salary, age)
			balance = balance.Add(employee).Add(employer)
			balance = balance.Mul(one.Add(annualReturn))
			salary = salary.Mul(one.Add(domain.CoerceDecimal(tsp.SalaryGrowthRate, decimal.Zero)))
			continue
		}

		if fire.FireAge > 0 && age >= fire.FireAge {
			need := annualWithdrawalNeed(annualNeed, inflation, age-tsp.CurrentAge, age, pensionMonthly, fire)
			if need.GreaterThan(balance) {
				outcome.survived = false
				break
			}
			balance = balance.Sub(need)
		}
		balance = balance.Mul(one.Add(annualReturn))
	}

	if outcome.survived {
		// Reference ages beyond the horizon report the final balance.
		if tsp.RetirementAge >= endAge {
			outcome.retirementBalance = balance
		}
		if fire.FireAge >= endAge {
			outcome.fireAgeBalance = balance
		}
	}
	return outcome
}

// drawAnnualReturn samples mean + stddev*N(0,1), clamped to a wide band so a
// single draw can never wipe out or multiply a balance implausibly.
func drawAnnualReturn(rng *SeededRand, mean, stdDev float64) decimal.Decimal {
	draw := domain.CoerceFloatRange(mean+stdDev*rng.NormFloat64(), 0, -returnClampBand, returnClampBand)
	return decimal.NewFromFloat(draw)
}

// annualWithdrawalNeed is the spending goal escalated by inflation from the
// start of the projection, net of whatever pension, Social Security and other
// income is flowing at this age. Never negative.
func annualWithdrawalNeed(baseAnnualNeed, inflation decimal.Decimal, yearsElapsed, age int, pensionMonthly decimal.Decimal, fire domain.FIREParams) decimal.Decimal {
	need := baseAnnualNeed.Mul(one.Add(inflation).Pow(decimal.NewFromInt(int64(yearsElapsed))))

	if age >= fire.PensionStartAge {
		need = need.Sub(domain.CoerceDecimal(pensionMonthly, decimal.Zero).Mul(twelve))
	}
	if fire.SocialSecurityStartAge > 0 && age >= fire.SocialSecurityStartAge {
		need = need.Sub(domain.CoerceDecimal(fire.SocialSecurityMonthly, decimal.Zero).Mul(twelve))
	}
	need = need.Sub(domain.CoerceDecimal(fire.OtherMonthlyIncome(), decimal.Zero).Mul(twelve))

	if need.IsNegative() {
		return decimal.Zero
	}
	return need
}

// stayFederalMonthlyPension derives the monthly pension the simulated paths
// credit once the pension start age is reached.
func stayFederalMonthlyPension(scenario *domain.Scenario) decimal.Decimal {
	return ComparePensionPaths(scenario.FERS).StayFederal.MonthlyPension
}
