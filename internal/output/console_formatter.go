package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// ConsoleFormatter renders the detailed plain-text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}

	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "FEDERAL EMPLOYEE FIRE ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)

	if report.Scenario != nil {
		tsp := report.Scenario.TSP
		fmt.Fprintf(&buf, "SCENARIO: %s\n", report.Scenario.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "  Current Age:            %d\n", tsp.CurrentAge)
		fmt.Fprintf(&buf, "  Retirement Age:         %d\n", tsp.RetirementAge)
		fmt.Fprintf(&buf, "  Current TSP Balance:    %s\n", FormatCurrency(tsp.CurrentBalance))
		fmt.Fprintf(&buf, "  Annual Salary:          %s\n", FormatCurrency(tsp.AnnualSalary))
		fmt.Fprintf(&buf, "  Contribution:           %s of salary\n", FormatPercentage(tsp.ContributionPercent.Mul(decimal.NewFromInt(100))))
		fmt.Fprintln(&buf)
	}

	writeProjection(&buf, report.TSP)
	writeEligibility(&buf, report.Eligibility, report.EarliestImmediateAge)
	writePensionComparison(&buf, report.Pension)
	writeFireGap(&buf, report.FireGap)

	return buf.Bytes(), nil
}

func writeProjection(buf *bytes.Buffer, p domain.DualBucketProjection) {
	fmt.Fprintln(buf, "TSP PROJECTION AT RETIREMENT:")
	fmt.Fprintln(buf, "-----------------------------")
	fmt.Fprintf(buf, "  Traditional Balance:    %s\n", FormatCurrency(p.TraditionalBalance))
	fmt.Fprintf(buf, "  Roth Balance:           %s\n", FormatCurrency(p.RothBalance))
	fmt.Fprintf(buf, "  TOTAL BALANCE:          %s\n", FormatCurrency(p.ProjectedBalance))
	fmt.Fprintf(buf, "  After-Tax Value:        %s\n", FormatCurrency(p.AfterTaxValue))
	fmt.Fprintf(buf, "  Real (Today's Dollars): %s\n", FormatCurrency(p.RealBalance))
	fmt.Fprintf(buf, "  Employee Contributions: %s\n", FormatCurrency(p.TotalEmployee))
	fmt.Fprintf(buf, "  Employer Contributions: %s\n", FormatCurrency(p.TotalEmployer))
	fmt.Fprintf(buf, "  Blended Annual Return:  %s\n", FormatPercentage(p.WeightedReturn.Mul(decimal.NewFromInt(100))))
	fmt.Fprintln(buf)
}

func writeEligibility(buf *bytes.Buffer, v domain.EligibilityVerdict, earliest *int) {
	fmt.Fprintln(buf, "FERS ELIGIBILITY:")
	fmt.Fprintln(buf, "-----------------")
	fmt.Fprintf(buf, "  Status:                 %s\n", v.Status)
	if v.ReductionPercent.IsPositive() {
		fmt.Fprintf(buf, "  Annuity Reduction:      %s\n", FormatPercentage(v.ReductionPercent))
	}
	fmt.Fprintf(buf, "  %s\n", v.Explanation)
	if earliest != nil {
		fmt.Fprintf(buf, "  Earliest Immediate Age: %d\n", *earliest)
	}
	fmt.Fprintln(buf)
}

func writePensionComparison(buf *bytes.Buffer, p domain.PensionComparison) {
	fmt.Fprintln(buf, "PENSION: STAY FEDERAL vs LEAVE EARLY:")
	fmt.Fprintln(buf, "-------------------------------------")
	fmt.Fprintf(buf, "%-28s %15s %15s\n", "", "STAY", "LEAVE")
	fmt.Fprintf(buf, "%-28s %15s %15s\n", "  Service Years",
		p.StayFederal.ServiceYears.StringFixed(1), p.LeaveEarly.ServiceYears.StringFixed(1))
	fmt.Fprintf(buf, "%-28s %15d %15d\n", "  Pension Start Age",
		p.StayFederal.StartAge, p.LeaveEarly.StartAge)
	fmt.Fprintf(buf, "%-28s %15s %15s\n", "  Annual Pension",
		FormatCurrency(p.StayFederal.AnnualPension), FormatCurrency(p.LeaveEarly.AnnualPension))
	fmt.Fprintf(buf, "%-28s %15s %15s\n", "  Monthly Pension",
		FormatCurrency(p.StayFederal.MonthlyPension), FormatCurrency(p.LeaveEarly.MonthlyPension))
	fmt.Fprintf(buf, "%-28s %15s %15s\n", "  Lifetime Value",
		FormatCurrency(p.StayFederal.LifetimeValue), FormatCurrency(p.LeaveEarly.LifetimeValue))
	if p.BreakEvenAge != nil {
		fmt.Fprintf(buf, "  Break-Even Age:         %s\n", p.BreakEvenAge.StringFixed(1))
	} else {
		fmt.Fprintln(buf, "  Break-Even Age:         n/a (staying never catches up)")
	}
	fmt.Fprintln(buf)
}

// FormatFireGap renders just the FIRE gap section, for the firegap command.
func FormatFireGap(g domain.FireGapResult) string {
	var buf bytes.Buffer
	writeFireGap(&buf, g)
	return buf.String()
}

func writeFireGap(buf *bytes.Buffer, g domain.FireGapResult) {
	fmt.Fprintln(buf, "FIRE GAP ANALYSIS:")
	fmt.Fprintln(buf, "------------------")
	fmt.Fprintf(buf, "  Monthly Withdrawal:     %s\n", FormatCurrency(g.MonthlyWithdrawal))
	fmt.Fprintf(buf, "  Monthly Pension:        %s\n", FormatCurrency(g.PensionMonthly))
	fmt.Fprintf(buf, "  Total Passive Income:   %s\n", FormatCurrency(g.TotalPassiveIncome))
	fmt.Fprintf(buf, "  Income Goal:            %s\n", FormatCurrency(g.FireIncomeGoal))
	if g.MonthlyGap.IsNegative() {
		fmt.Fprintf(buf, "  SHORTFALL:              %s per month\n", FormatCurrency(g.MonthlyGap.Abs()))
	} else {
		fmt.Fprintf(buf, "  SURPLUS:                %s per month\n", FormatCurrency(g.MonthlyGap))
	}
	fmt.Fprintf(buf, "  FIRE Ready:             %t\n", g.IsFireReady)
	fmt.Fprintf(buf, "  Confidence:             %s\n", g.ConfidenceLevel)

	if g.Bridge != nil {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "  PENSION BRIDGE:")
		fmt.Fprintf(buf, "    Years to Bridge:      %d\n", g.Bridge.YearsToBridge)
		fmt.Fprintf(buf, "    Monthly Shortfall:    %s\n", FormatCurrency(g.Bridge.MonthlyShortfall))
		fmt.Fprintf(buf, "    Required Assets:      %s\n", FormatCurrency(g.Bridge.RequiredBridgeAssets))
	}
	fmt.Fprintln(buf)
}
