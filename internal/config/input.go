package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fedfire/fedfire/internal/domain"
)

// Defaults applied by Normalize when a scenario field is missing or
// malformed. Numeric junk never fails a load; it degrades to these.
var (
	defaultDeferralLimit = decimal.NewFromInt(23500)
	defaultCatchUpLimit  = decimal.NewFromInt(7500)
	defaultSWR           = decimal.NewFromFloat(0.04)

	defaultCatchUpAge    = 50
	defaultMRA           = 57
	defaultPensionEndAge = 90
	maxProjectionAge     = 120
)

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML file and normalizes it. File
// and syntax problems are real errors; numeric problems inside a parseable
// file are not — Normalize clamps or defaults them so a partially-filled
// scenario still calculates.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var scenario domain.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.Normalize(&scenario)
	return &scenario, nil
}

// Normalize clamps and defaults every field of the scenario in place so the
// engine never sees values it would have to reject.
func (ip *InputParser) Normalize(s *domain.Scenario) {
	ip.normalizeTSP(&s.TSP)
	ip.normalizeFERS(&s.FERS, s.TSP.CurrentAge, s.TSP.RetirementAge)
	ip.normalizeFIRE(&s.FIRE, s.TSP.RetirementAge)
}

func (ip *InputParser) normalizeTSP(p *domain.TSPParams) {
	p.CurrentBalance = domain.CoerceDecimal(p.CurrentBalance, decimal.Zero)
	p.AnnualSalary = domain.CoerceDecimal(p.AnnualSalary, decimal.Zero)
	p.SalaryGrowthRate = domain.CoerceDecimal(p.SalaryGrowthRate, decimal.Zero)
	p.CurrentAge = domain.ClampInt(p.CurrentAge, 0, maxProjectionAge)
	p.RetirementAge = domain.ClampInt(p.RetirementAge, 0, maxProjectionAge)

	p.ContributionPercent = domain.CoerceDecimal(p.ContributionPercent, decimal.Zero)
	if p.ContributionPercent.GreaterThan(decimal.NewFromInt(1)) {
		// Tolerate percent-style input (5 instead of 0.05).
		p.ContributionPercent = p.ContributionPercent.Div(decimal.NewFromInt(100))
	}

	if p.Treatment != domain.TaxTreatmentRoth {
		p.Treatment = domain.TaxTreatmentTraditional
	}

	if !p.Allocation.IsValid() {
		p.Allocation = domain.DefaultFundAllocation()
	}
	if p.FundReturns == (domain.FundRates{}) {
		p.FundReturns = domain.DefaultFundReturns()
	}
	if p.FundStdDevs == (domain.FundRates{}) {
		p.FundStdDevs = domain.DefaultFundStdDevs()
	}

	if !p.AnnualDeferralLimit.IsPositive() {
		p.AnnualDeferralLimit = defaultDeferralLimit
	}
	if p.CatchUpLimit.IsNegative() || p.CatchUpLimit.IsZero() {
		p.CatchUpLimit = defaultCatchUpLimit
	}
	if p.CatchUpAge <= 0 {
		p.CatchUpAge = defaultCatchUpAge
	}

	p.CurrentTaxRate = coerceRate(p.CurrentTaxRate)
	p.RetirementTaxRate = coerceRate(p.RetirementTaxRate)
	p.InflationRate = domain.CoerceDecimal(p.InflationRate, decimal.Zero)
}

func (ip *InputParser) normalizeFERS(p *domain.FERSParams, fallbackCurrentAge, fallbackRetirementAge int) {
	p.ServiceYears = domain.ClampIntMin(p.ServiceYears, 0)
	p.ServiceMonths = domain.ClampInt(p.ServiceMonths, 0, 11)
	p.High3Salary = domain.CoerceDecimal(p.High3Salary, decimal.Zero)
	p.DeferredYears = domain.ClampIntMin(p.DeferredYears, 0)

	if p.CurrentAge <= 0 {
		p.CurrentAge = fallbackCurrentAge
	}
	if p.RetirementAge <= 0 {
		p.RetirementAge = fallbackRetirementAge
	}
	if p.MinimumRetirementAge <= 0 {
		p.MinimumRetirementAge = defaultMRA
	}
	if p.PensionEndAge <= 0 {
		p.PensionEndAge = defaultPensionEndAge
	}
	if p.PrivateComparison != nil {
		p.PrivateComparison.AnnualSalary = domain.CoerceDecimal(p.PrivateComparison.AnnualSalary, decimal.Zero)
	}
}

func (ip *InputParser) normalizeFIRE(p *domain.FIREParams, fallbackRetirementAge int) {
	if p.FireAge <= 0 {
		p.FireAge = fallbackRetirementAge
	}
	p.MonthlyIncomeGoal = domain.CoerceDecimal(p.MonthlyIncomeGoal, decimal.Zero)
	p.SideHustleMonthly = domain.CoerceDecimal(p.SideHustleMonthly, decimal.Zero)
	p.SpouseIncomeMonthly = domain.CoerceDecimal(p.SpouseIncomeMonthly, decimal.Zero)
	p.SocialSecurityMonthly = domain.CoerceDecimal(p.SocialSecurityMonthly, decimal.Zero)
	p.SocialSecurityStartAge = domain.ClampIntMin(p.SocialSecurityStartAge, 0)
	p.PensionStartAge = domain.ClampIntMin(p.PensionStartAge, 0)

	if !p.SafeWithdrawalRate.IsPositive() {
		p.SafeWithdrawalRate = defaultSWR
	}
}

func coerceRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		// Tolerate percent-style input (22 instead of 0.22).
		rate = rate.Div(decimal.NewFromInt(100))
	}
	if rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.NewFromFloat(0.99)
	}
	return rate
}
