package integration

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedfire/fedfire/internal/calculation"
	"github.com/fedfire/fedfire/internal/config"
	"github.com/fedfire/fedfire/internal/output"
)

const exampleScenario = "../testdata/generic_example_scenario.yaml"

// TestBasicIntegration tests basic end-to-end functionality
func TestBasicIntegration(t *testing.T) {
	t.Run("scenario_loading", func(t *testing.T) {
		parser := config.NewInputParser()
		scenario, err := parser.LoadFromFile(exampleScenario)
		require.NoError(t, err, "Should load scenario successfully")
		require.NotNil(t, scenario)

		assert.Equal(t, "Generic Example", scenario.Name)
		assert.Equal(t, 46, scenario.TSP.CurrentAge)
		assert.True(t, scenario.TSP.Allocation.IsValid())
		assert.True(t, scenario.FIRE.SafeWithdrawalRate.Equal(decimal.NewFromFloat(0.04)))
	})

	t.Run("calculation_engine", func(t *testing.T) {
		parser := config.NewInputParser()
		scenario, err := parser.LoadFromFile(exampleScenario)
		require.NoError(t, err)

		engine := calculation.NewEngine()
		report := engine.RunScenario(scenario)
		require.NotNil(t, report)

		assert.True(t, report.TSP.ProjectedBalance.GreaterThan(scenario.TSP.CurrentBalance),
			"Eleven years of contributions and growth should increase the balance")
		assert.True(t, report.Pension.StayFederal.AnnualPension.IsPositive())
		assert.True(t, report.FireGap.FireIncomeGoal.Equal(decimal.NewFromInt(5200)))
		require.NotNil(t, report.EarliestImmediateAge)
		assert.Equal(t, 57, *report.EarliestImmediateAge)
	})

	t.Run("simulation", func(t *testing.T) {
		parser := config.NewInputParser()
		scenario, err := parser.LoadFromFile(exampleScenario)
		require.NoError(t, err)

		engine := calculation.NewEngine()
		result := engine.Simulate(scenario, calculation.SimulationConfig{NumSimulations: 200, Seed: 42})

		assert.Equal(t, 200, result.NumSimulations)
		assert.True(t, result.SuccessRate.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, result.SuccessRate.LessThanOrEqual(decimal.NewFromInt(1)))
		require.NotNil(t, result.RetirementBalances)
		assert.True(t, result.RetirementBalances.P10.LessThanOrEqual(result.RetirementBalances.P90))
	})

	t.Run("output_generation", func(t *testing.T) {
		parser := config.NewInputParser()
		scenario, err := parser.LoadFromFile(exampleScenario)
		require.NoError(t, err)

		report := calculation.NewEngine().RunScenario(scenario)
		require.NotNil(t, report)

		for _, format := range []string{"console", "json", "csv"} {
			f := output.GetFormatterByName(format)
			require.NotNil(t, f, "formatter %q", format)
			data, err := f.Format(report)
			require.NoError(t, err, "formatter %q", format)
			assert.NotEmpty(t, data, "formatter %q", format)
		}
	})
}
