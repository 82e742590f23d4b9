package domain

import (
	"github.com/shopspring/decimal"
)

// TaxTreatment identifies which TSP bucket an employee's own deferrals land in.
type TaxTreatment string

const (
	TaxTreatmentTraditional TaxTreatment = "traditional"
	TaxTreatmentRoth        TaxTreatment = "roth"
)

// FundAllocation holds percentage weights across the five TSP funds.
// Weights are expressed on a 0-100 scale and are expected to sum to 100;
// malformed allocations fall back to DefaultFundAllocation rather than failing.
type FundAllocation struct {
	GFund decimal.Decimal `yaml:"g_fund" json:"g_fund"`
	FFund decimal.Decimal `yaml:"f_fund" json:"f_fund"`
	CFund decimal.Decimal `yaml:"c_fund" json:"c_fund"`
	SFund decimal.Decimal `yaml:"s_fund" json:"s_fund"`
	IFund decimal.Decimal `yaml:"i_fund" json:"i_fund"`
}

// Total returns the sum of all five weights.
func (fa FundAllocation) Total() decimal.Decimal {
	return fa.GFund.Add(fa.FFund).Add(fa.CFund).Add(fa.SFund).Add(fa.IFund)
}

// IsValid reports whether the allocation can be used as-is: no negative
// weights and a positive total.
func (fa FundAllocation) IsValid() bool {
	for _, w := range []decimal.Decimal{fa.GFund, fa.FFund, fa.CFund, fa.SFund, fa.IFund} {
		if w.IsNegative() {
			return false
		}
	}
	return fa.Total().IsPositive()
}

// FundRates holds one annual rate (expected return or standard deviation)
// per TSP fund, expressed as decimal fractions (0.07 = 7%).
type FundRates struct {
	GFund decimal.Decimal `yaml:"g_fund" json:"g_fund"`
	FFund decimal.Decimal `yaml:"f_fund" json:"f_fund"`
	CFund decimal.Decimal `yaml:"c_fund" json:"c_fund"`
	SFund decimal.Decimal `yaml:"s_fund" json:"s_fund"`
	IFund decimal.Decimal `yaml:"i_fund" json:"i_fund"`
}

// DefaultFundAllocation is the fallback 10/20/40/20/10 G/F/C/S/I split used
// whenever a scenario's allocation is missing or malformed.
func DefaultFundAllocation() FundAllocation {
	return FundAllocation{
		GFund: decimal.NewFromInt(10),
		FFund: decimal.NewFromInt(20),
		CFund: decimal.NewFromInt(40),
		SFund: decimal.NewFromInt(20),
		IFund: decimal.NewFromInt(10),
	}
}

// DefaultFundReturns returns long-term average annual returns by fund.
func DefaultFundReturns() FundRates {
	return FundRates{
		GFund: decimal.NewFromFloat(0.02),
		FFund: decimal.NewFromFloat(0.04),
		CFund: decimal.NewFromFloat(0.07),
		SFund: decimal.NewFromFloat(0.08),
		IFund: decimal.NewFromFloat(0.06),
	}
}

// DefaultFundStdDevs returns annualized return standard deviations by fund.
func DefaultFundStdDevs() FundRates {
	return FundRates{
		GFund: decimal.NewFromFloat(0.01),
		FFund: decimal.NewFromFloat(0.05),
		CFund: decimal.NewFromFloat(0.15),
		SFund: decimal.NewFromFloat(0.18),
		IFund: decimal.NewFromFloat(0.16),
	}
}

// TSPParams describes the account-growth side of a scenario.
type TSPParams struct {
	CurrentBalance      decimal.Decimal `yaml:"current_balance" json:"current_balance"`
	CurrentAge          int             `yaml:"current_age" json:"current_age"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirement_age"`
	AnnualSalary        decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	SalaryGrowthRate    decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`
	ContributionPercent decimal.Decimal `yaml:"contribution_percent" json:"contribution_percent"` // fraction of salary, 0-1
	Treatment           TaxTreatment    `yaml:"tax_treatment" json:"tax_treatment"`
	Allocation          FundAllocation  `yaml:"allocation" json:"allocation"`
	FundReturns         FundRates       `yaml:"fund_returns" json:"fund_returns"`
	FundStdDevs         FundRates       `yaml:"fund_std_devs" json:"fund_std_devs"`
	IncludeMatch        bool            `yaml:"include_match" json:"include_match"`
	IncludeAutomatic    bool            `yaml:"include_automatic" json:"include_automatic"` // agency automatic 1%
	AnnualDeferralLimit decimal.Decimal `yaml:"annual_deferral_limit" json:"annual_deferral_limit"`
	CatchUpLimit        decimal.Decimal `yaml:"catch_up_limit" json:"catch_up_limit"`
	CatchUpAge          int             `yaml:"catch_up_age" json:"catch_up_age"`
	CurrentTaxRate      decimal.Decimal `yaml:"current_tax_rate" json:"current_tax_rate"`
	RetirementTaxRate   decimal.Decimal `yaml:"retirement_tax_rate" json:"retirement_tax_rate"`
	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	ShowReal            bool            `yaml:"show_real" json:"show_real"`
}

// ProjectionYears returns the forward horizon in whole years. A retirement
// age at or before the current age yields zero, never a negative count.
func (p TSPParams) ProjectionYears() int {
	years := p.RetirementAge - p.CurrentAge
	if years < 0 {
		return 0
	}
	return years
}

// PrivateComparison describes the hypothetical private-sector path used by
// the stay-vs-leave pension analysis.
type PrivateComparison struct {
	AnnualSalary decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
}

// FERSParams describes the pension side of a scenario.
type FERSParams struct {
	ServiceYears         int                `yaml:"service_years" json:"service_years"`
	ServiceMonths        int                `yaml:"service_months" json:"service_months"`
	High3Salary          decimal.Decimal    `yaml:"high_3_salary" json:"high_3_salary"`
	CurrentAge           int                `yaml:"current_age" json:"current_age"`
	RetirementAge        int                `yaml:"retirement_age" json:"retirement_age"`
	MinimumRetirementAge int                `yaml:"minimum_retirement_age" json:"minimum_retirement_age"`
	PensionEndAge        int                `yaml:"pension_end_age" json:"pension_end_age"`
	IncludeFutureService bool               `yaml:"include_future_service" json:"include_future_service"`
	DeferredYears        int                `yaml:"deferred_years" json:"deferred_years"` // extra federal years before leaving early
	PrivateComparison    *PrivateComparison `yaml:"private_comparison,omitempty" json:"private_comparison,omitempty"`
}

// TotalServiceYears converts years+months of service into a fractional year count.
func (p FERSParams) TotalServiceYears() decimal.Decimal {
	years := decimal.NewFromInt(int64(p.ServiceYears))
	months := decimal.NewFromInt(int64(p.ServiceMonths)).Div(decimal.NewFromInt(12))
	return years.Add(months)
}

// FIREParams describes the income-goal side of a scenario.
type FIREParams struct {
	FireAge                int             `yaml:"fire_age" json:"fire_age"`
	MonthlyIncomeGoal      decimal.Decimal `yaml:"monthly_income_goal" json:"monthly_income_goal"`
	SideHustleMonthly      decimal.Decimal `yaml:"side_hustle_monthly" json:"side_hustle_monthly"`
	SpouseIncomeMonthly    decimal.Decimal `yaml:"spouse_income_monthly" json:"spouse_income_monthly"`
	SafeWithdrawalRate     decimal.Decimal `yaml:"safe_withdrawal_rate" json:"safe_withdrawal_rate"`
	PensionStartAge        int             `yaml:"pension_start_age" json:"pension_start_age"` // 0 means available immediately
	SocialSecurityMonthly  decimal.Decimal `yaml:"social_security_monthly" json:"social_security_monthly"`
	SocialSecurityStartAge int             `yaml:"social_security_start_age" json:"social_security_start_age"`
}

// OtherMonthlyIncome sums the non-portfolio, non-pension income streams.
func (p FIREParams) OtherMonthlyIncome() decimal.Decimal {
	return p.SideHustleMonthly.Add(p.SpouseIncomeMonthly)
}

// Scenario bundles everything the engine needs for one planning run. It is
// an immutable input value: callers construct it (typically via the config
// loader) and pass it into each calculation; nothing in the engine mutates it.
type Scenario struct {
	Name string     `yaml:"name" json:"name"`
	TSP  TSPParams  `yaml:"tsp" json:"tsp"`
	FERS FERSParams `yaml:"fers" json:"fers"`
	FIRE FIREParams `yaml:"fire" json:"fire"`
}
