package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedfire/fedfire/internal/domain"
)

func simulationScenario() *domain.Scenario {
	return &domain.Scenario{
		Name: "simulation test",
		TSP: domain.TSPParams{
			CurrentBalance:      decimal.NewFromInt(400000),
			CurrentAge:          45,
			RetirementAge:       57,
			AnnualSalary:        decimal.NewFromInt(120000),
			SalaryGrowthRate:    decimal.NewFromFloat(0.02),
			ContributionPercent: decimal.NewFromFloat(0.10),
			Treatment:           domain.TaxTreatmentTraditional,
			Allocation:          domain.DefaultFundAllocation(),
			FundReturns:         domain.DefaultFundReturns(),
			FundStdDevs:         domain.DefaultFundStdDevs(),
			IncludeMatch:        true,
			IncludeAutomatic:    true,
			AnnualDeferralLimit: decimal.NewFromInt(23500),
			CatchUpLimit:        decimal.NewFromInt(7500),
			CatchUpAge:          50,
			InflationRate:       decimal.NewFromFloat(0.025),
		},
		FERS: domain.FERSParams{
			ServiceYears:         15,
			High3Salary:          decimal.NewFromInt(120000),
			CurrentAge:           45,
			RetirementAge:        57,
			MinimumRetirementAge: 57,
			PensionEndAge:        90,
			IncludeFutureService: true,
		},
		FIRE: domain.FIREParams{
			FireAge:            57,
			MonthlyIncomeGoal:  decimal.NewFromInt(5000),
			SafeWithdrawalRate: decimal.NewFromFloat(0.04),
			PensionStartAge:    57,
		},
	}
}

func TestRunSimulationClampsCount(t *testing.T) {
	result := RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: 3, Seed: 42})
	assert.Equal(t, MinSimulations, result.NumSimulations)

	result = RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: -10, Seed: 42})
	assert.Equal(t, MinSimulations, result.NumSimulations)

	result = RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: 250, Seed: 42})
	assert.Equal(t, 250, result.NumSimulations)
}

func TestRunSimulationProbabilitiesInRange(t *testing.T) {
	result := RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: 200, Seed: 42})

	assert.True(t, result.SuccessRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, result.SuccessRate.LessThanOrEqual(decimal.NewFromInt(1)))
	assert.True(t, result.GoalMetRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, result.GoalMetRate.LessThanOrEqual(decimal.NewFromInt(1)))
}

func TestRunSimulationDeterministicWithSeed(t *testing.T) {
	config := SimulationConfig{NumSimulations: 150, Seed: 777}

	a := RunSimulation(simulationScenario(), config)
	b := RunSimulation(simulationScenario(), config)

	assert.True(t, a.SuccessRate.Equal(b.SuccessRate))
	assert.True(t, a.GoalMetRate.Equal(b.GoalMetRate))
	require.NotNil(t, a.RetirementBalances)
	require.NotNil(t, b.RetirementBalances)
	assert.True(t, a.RetirementBalances.P50.Equal(b.RetirementBalances.P50))
	assert.Equal(t, int64(777), a.Seed)
}

func TestRunSimulationSeedsDiffer(t *testing.T) {
	a := RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: 150, Seed: 1})
	b := RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: 150, Seed: 2})

	require.NotNil(t, a.RetirementBalances)
	require.NotNil(t, b.RetirementBalances)
	assert.False(t, a.RetirementBalances.P50.Equal(b.RetirementBalances.P50),
		"different seeds should produce different distributions")
}

func TestRunSimulationZeroSeedUsesWallClock(t *testing.T) {
	result := RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: 100})
	assert.NotEqual(t, int64(0), result.Seed)
}

func TestRunSimulationNotApplicable(t *testing.T) {
	t.Run("nil scenario", func(t *testing.T) {
		result := RunSimulation(nil, SimulationConfig{NumSimulations: 500, Seed: 1})
		assert.Equal(t, 500, result.NumSimulations)
		assert.True(t, result.SuccessRate.IsZero())
		assert.True(t, result.GoalMetRate.IsZero())
		assert.Nil(t, result.RetirementBalances)
		assert.Nil(t, result.FireAgeBalances)
	})

	t.Run("non-positive goal", func(t *testing.T) {
		scenario := simulationScenario()
		scenario.FIRE.MonthlyIncomeGoal = decimal.Zero
		result := RunSimulation(scenario, SimulationConfig{NumSimulations: 100, Seed: 1})
		assert.True(t, result.SuccessRate.IsZero())
		assert.Nil(t, result.RetirementBalances)
	})
}

func TestRunSimulationPercentilesOrdered(t *testing.T) {
	result := RunSimulation(simulationScenario(), SimulationConfig{NumSimulations: 300, Seed: 9})

	require.NotNil(t, result.RetirementBalances)
	assert.True(t, result.RetirementBalances.P10.LessThanOrEqual(result.RetirementBalances.P50))
	assert.True(t, result.RetirementBalances.P50.LessThanOrEqual(result.RetirementBalances.P90))
}

func TestDrawAnnualReturnClamped(t *testing.T) {
	rng := NewSeededRand(5)
	band := decimal.NewFromFloat(returnClampBand)
	for i := 0; i < 5000; i++ {
		draw := drawAnnualReturn(rng, 0.07, 0.60)
		assert.True(t, draw.LessThanOrEqual(band), "draw %s above clamp", draw)
		assert.True(t, draw.GreaterThanOrEqual(band.Neg()), "draw %s below clamp", draw)
	}
}

func TestAnnualWithdrawalNeed(t *testing.T) {
	fire := domain.FIREParams{
		PensionStartAge:        60,
		SocialSecurityMonthly:  decimal.NewFromInt(2000),
		SocialSecurityStartAge: 67,
	}
	base := decimal.NewFromInt(60000)

	t.Run("escalates with inflation", func(t *testing.T) {
		need := annualWithdrawalNeed(base, decimal.NewFromFloat(0.03), 10, 55, decimal.Zero, fire)
		assert.True(t, need.GreaterThan(base))
	})

	t.Run("pension offsets the need", func(t *testing.T) {
		withPension := annualWithdrawalNeed(base, decimal.Zero, 0, 60, decimal.NewFromInt(1500), fire)
		// 60000 - 18000
		assert.True(t, withPension.Equal(decimal.NewFromInt(42000)),
			"Expected 42000, got %s", withPension)
	})

	t.Run("never negative", func(t *testing.T) {
		need := annualWithdrawalNeed(base, decimal.Zero, 0, 70, decimal.NewFromInt(10000), fire)
		assert.True(t, need.IsZero())
	})
}
