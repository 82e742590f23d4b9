package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedfire/fedfire/internal/domain"
)

func TestWeightedAnnualReturn(t *testing.T) {
	t.Run("all G fund returns the G rate exactly", func(t *testing.T) {
		allocation := domain.FundAllocation{GFund: decimal.NewFromInt(100)}
		rate := WeightedAnnualReturn(allocation, domain.DefaultFundReturns())
		assert.True(t, rate.Equal(decimal.NewFromFloat(0.02)),
			"Expected 0.02, got %s", rate)
	})

	t.Run("even C/S split averages the two rates", func(t *testing.T) {
		allocation := domain.FundAllocation{
			CFund: decimal.NewFromInt(50),
			SFund: decimal.NewFromInt(50),
		}
		rate := WeightedAnnualReturn(allocation, domain.DefaultFundReturns())
		// (0.07 + 0.08) / 2
		assert.True(t, rate.Equal(decimal.NewFromFloat(0.075)),
			"Expected 0.075, got %s", rate)
	})

	t.Run("malformed allocation falls back to the default split", func(t *testing.T) {
		var zero domain.FundAllocation
		rate := WeightedAnnualReturn(zero, domain.DefaultFundReturns())
		expected := WeightedAnnualReturn(domain.DefaultFundAllocation(), domain.DefaultFundReturns())
		assert.True(t, rate.Equal(expected))
	})

	t.Run("allocation not summing to 100 is normalized", func(t *testing.T) {
		allocation := domain.FundAllocation{GFund: decimal.NewFromInt(50)}
		rate := WeightedAnnualReturn(allocation, domain.DefaultFundReturns())
		assert.True(t, rate.Equal(decimal.NewFromFloat(0.02)),
			"Expected 0.02, got %s", rate)
	})
}

func TestProjectTSPGrowth(t *testing.T) {
	t.Run("zero-year horizon returns the start balance untouched", func(t *testing.T) {
		projection := ProjectTSPGrowth(
			decimal.NewFromInt(100000), decimal.NewFromInt(500),
			decimal.NewFromFloat(0.07), 0, domain.TaxTreatmentTraditional, 45,
			decimal.NewFromFloat(0.22))

		assert.True(t, projection.ProjectedBalance.Equal(decimal.NewFromInt(100000)))
		assert.True(t, projection.TotalContributions.IsZero())
		assert.True(t, projection.TotalGrowth.IsZero())
		require.Len(t, projection.YearlyData, 1)
		assert.Equal(t, 45, projection.YearlyData[0].Age)
	})

	t.Run("contributions land before growth each month", func(t *testing.T) {
		projection := ProjectTSPGrowth(
			decimal.Zero, decimal.NewFromInt(1000),
			decimal.NewFromFloat(0.12), 1, domain.TaxTreatmentTraditional, 30,
			decimal.Zero)

		// With contribution-before-growth every deposit earns at least one
		// month of growth, so the balance strictly exceeds the deposits.
		assert.True(t, projection.ProjectedBalance.GreaterThan(decimal.NewFromInt(12000)),
			"Balance %s should exceed raw contributions", projection.ProjectedBalance)
		assert.True(t, projection.TotalContributions.Equal(decimal.NewFromInt(12000)))
		assert.True(t, projection.TotalGrowth.IsPositive())
		require.Len(t, projection.YearlyData, 2)
	})

	t.Run("zero return accumulates contributions exactly", func(t *testing.T) {
		projection := ProjectTSPGrowth(
			decimal.NewFromInt(5000), decimal.NewFromInt(100),
			decimal.Zero, 2, domain.TaxTreatmentTraditional, 40,
			decimal.Zero)

		assert.True(t, projection.ProjectedBalance.Equal(decimal.NewFromInt(7400)),
			"Expected 7400, got %s", projection.ProjectedBalance)
		assert.True(t, projection.TotalGrowth.IsZero())
	})

	t.Run("negative horizon is treated as zero", func(t *testing.T) {
		projection := ProjectTSPGrowth(
			decimal.NewFromInt(1000), decimal.NewFromInt(100),
			decimal.NewFromFloat(0.05), -3, domain.TaxTreatmentTraditional, 50,
			decimal.Zero)
		assert.True(t, projection.ProjectedBalance.Equal(decimal.NewFromInt(1000)))
		require.Len(t, projection.YearlyData, 1)
	})
}

func TestAfterTaxValue(t *testing.T) {
	balance := decimal.NewFromInt(100000)
	rate := decimal.NewFromFloat(0.20)

	traditional := afterTaxValue(balance, decimal.Zero, domain.TaxTreatmentTraditional, rate)
	roth := afterTaxValue(balance, decimal.Zero, domain.TaxTreatmentRoth, rate)

	// Roth money is already taxed; the same nominal balance is worth more.
	assert.True(t, roth.Equal(balance))
	assert.True(t, traditional.Equal(decimal.NewFromInt(80000)))
	assert.True(t, roth.GreaterThan(traditional))
}

func TestEffectiveDeferralLimit(t *testing.T) {
	params := domain.TSPParams{
		AnnualDeferralLimit: decimal.NewFromInt(23500),
		CatchUpLimit:        decimal.NewFromInt(7500),
		CatchUpAge:          50,
	}

	assert.True(t, EffectiveDeferralLimit(params, 49).Equal(decimal.NewFromInt(23500)))
	assert.True(t, EffectiveDeferralLimit(params, 50).Equal(decimal.NewFromInt(31000)))
	assert.True(t, EffectiveDeferralLimit(params, 60).Equal(decimal.NewFromInt(31000)))
}

func TestAgencyMatchRate(t *testing.T) {
	tests := []struct {
		name                string
		contributionPercent float64
		includeMatch        bool
		includeAutomatic    bool
		expected            float64
	}{
		{"No toggles, no match", 0.05, false, false, 0},
		{"Automatic only", 0.0, false, true, 0.01},
		{"Full match at 5 percent", 0.05, true, true, 0.05},
		{"Match caps above 5 percent", 0.10, true, true, 0.05},
		{"3 percent gets dollar for dollar", 0.03, true, true, 0.04},
		{"4 percent gets half on the second tier", 0.04, true, true, 0.045},
		{"Zero contribution still gets automatic", 0.0, true, true, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := domain.TSPParams{
				ContributionPercent: decimal.NewFromFloat(tt.contributionPercent),
				IncludeMatch:        tt.includeMatch,
				IncludeAutomatic:    tt.includeAutomatic,
			}
			rate := AgencyMatchRate(params)
			assert.True(t, rate.Equal(decimal.NewFromFloat(tt.expected)),
				"Expected %v, got %s", tt.expected, rate)
		})
	}
}

func TestAnnualContributions(t *testing.T) {
	t.Run("deferral clamps at the annual limit", func(t *testing.T) {
		params := domain.TSPParams{
			ContributionPercent: decimal.NewFromFloat(0.50),
			AnnualDeferralLimit: decimal.NewFromInt(23500),
			Treatment:           domain.TaxTreatmentTraditional,
		}
		employee, _ := AnnualContributions(params, decimal.NewFromInt(200000), 40)
		assert.True(t, employee.Equal(decimal.NewFromInt(23500)),
			"Expected 23500, got %s", employee)
	})

	t.Run("Roth deferral is credited after tax", func(t *testing.T) {
		params := domain.TSPParams{
			ContributionPercent: decimal.NewFromFloat(0.10),
			AnnualDeferralLimit: decimal.NewFromInt(23500),
			Treatment:           domain.TaxTreatmentRoth,
			CurrentTaxRate:      decimal.NewFromFloat(0.22),
		}
		employee, _ := AnnualContributions(params, decimal.NewFromInt(100000), 40)
		// 10000 * (1 - 0.22)
		assert.True(t, employee.Equal(decimal.NewFromInt(7800)),
			"Expected 7800, got %s", employee)
	})
}

func TestProjectDualBucket(t *testing.T) {
	baseParams := func() domain.TSPParams {
		return domain.TSPParams{
			CurrentBalance:      decimal.NewFromInt(100000),
			CurrentAge:          40,
			RetirementAge:       50,
			AnnualSalary:        decimal.NewFromInt(100000),
			ContributionPercent: decimal.NewFromFloat(0.05),
			Treatment:           domain.TaxTreatmentTraditional,
			Allocation:          domain.DefaultFundAllocation(),
			FundReturns:         domain.DefaultFundReturns(),
			FundStdDevs:         domain.DefaultFundStdDevs(),
			AnnualDeferralLimit: decimal.NewFromInt(23500),
			CatchUpLimit:        decimal.NewFromInt(7500),
			CatchUpAge:          50,
			RetirementTaxRate:   decimal.NewFromFloat(0.15),
		}
	}

	t.Run("traditional deferrals land in the pre-tax bucket", func(t *testing.T) {
		projection := ProjectDualBucket(baseParams())

		assert.True(t, projection.RothBalance.IsZero())
		assert.True(t, projection.TraditionalBalance.GreaterThan(decimal.NewFromInt(100000)))
		assert.True(t, projection.ProjectedBalance.Equal(projection.TraditionalBalance))
		require.Len(t, projection.YearlyData, 11)
		assert.Equal(t, 40, projection.YearlyData[0].Age)
		assert.Equal(t, 50, projection.YearlyData[10].Age)
	})

	t.Run("Roth start balance lands in the Roth bucket", func(t *testing.T) {
		params := baseParams()
		params.Treatment = domain.TaxTreatmentRoth
		params.IncludeMatch = false
		params.IncludeAutomatic = false

		projection := ProjectDualBucket(params)
		assert.True(t, projection.TraditionalBalance.IsZero())
		assert.True(t, projection.RothBalance.GreaterThan(decimal.NewFromInt(100000)))
	})

	t.Run("employer money is always pre-tax", func(t *testing.T) {
		params := baseParams()
		params.Treatment = domain.TaxTreatmentRoth
		params.IncludeMatch = true
		params.IncludeAutomatic = true

		projection := ProjectDualBucket(params)
		assert.True(t, projection.TraditionalBalance.IsPositive())
		assert.True(t, projection.RothBalance.IsPositive())
		assert.True(t, projection.TotalEmployer.IsPositive())
	})

	t.Run("monthly clamping caps the annual deferral", func(t *testing.T) {
		params := baseParams()
		params.ContributionPercent = decimal.NewFromFloat(0.50)
		params.AnnualSalary = decimal.NewFromInt(300000)
		params.SalaryGrowthRate = decimal.Zero

		projection := ProjectDualBucket(params)
		for _, point := range projection.YearlyData[1:] {
			assert.True(t, point.EmployeeContributions.LessThanOrEqual(point.DeferralLimit),
				"Age %d employee contributions %s exceed limit %s",
				point.Age, point.EmployeeContributions, point.DeferralLimit)
		}
	})

	t.Run("inflation discounts the real balance", func(t *testing.T) {
		params := baseParams()
		params.InflationRate = decimal.NewFromFloat(0.03)

		projection := ProjectDualBucket(params)
		assert.True(t, projection.RealBalance.LessThan(projection.ProjectedBalance))
		assert.True(t, projection.RealAfterTaxValue.LessThan(projection.AfterTaxValue))
	})

	t.Run("traditional beats Roth when the retirement rate is much lower", func(t *testing.T) {
		traditional := baseParams()
		traditional.CurrentBalance = decimal.Zero
		traditional.CurrentTaxRate = decimal.NewFromFloat(0.32)
		traditional.RetirementTaxRate = decimal.NewFromFloat(0.10)

		roth := traditional
		roth.Treatment = domain.TaxTreatmentRoth

		tradProjection := ProjectDualBucket(traditional)
		rothProjection := ProjectDualBucket(roth)

		// Deferring the full gross amount and paying 10% later beats paying
		// 32% up front on every contribution.
		assert.True(t, tradProjection.AfterTaxValue.GreaterThan(rothProjection.AfterTaxValue),
			"traditional %s should exceed Roth %s under this tax differential",
			tradProjection.AfterTaxValue, rothProjection.AfterTaxValue)
	})

	t.Run("zero horizon returns the start balance", func(t *testing.T) {
		params := baseParams()
		params.RetirementAge = params.CurrentAge

		projection := ProjectDualBucket(params)
		assert.True(t, projection.ProjectedBalance.Equal(decimal.NewFromInt(100000)))
		require.Len(t, projection.YearlyData, 1)
	})
}
