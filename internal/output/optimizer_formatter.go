package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// OptimizerFormatter renders grid-search candidates.
type OptimizerFormatter interface {
	Name() string
	FormatCandidates(candidates []domain.OptimizationCandidate) (string, error)
}

// NewOptimizerFormatter returns the formatter for the requested format,
// defaulting to console for unknown names.
func NewOptimizerFormatter(format string) OptimizerFormatter {
	switch format {
	case "json":
		return OptimizerJSONFormatter{}
	default:
		return OptimizerConsoleFormatter{}
	}
}

type OptimizerConsoleFormatter struct{}

func (ocf OptimizerConsoleFormatter) Name() string { return "console" }

func (ocf OptimizerConsoleFormatter) FormatCandidates(candidates []domain.OptimizationCandidate) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "OPTIMIZATION SUGGESTIONS")
	fmt.Fprintln(&buf, "========================")

	if len(candidates) == 0 {
		fmt.Fprintln(&buf, "No parameter change in the search grid reaches FIRE earlier than the current plan.")
		return buf.String(), nil
	}

	for i, c := range candidates {
		fmt.Fprintf(&buf, "SUGGESTION %d:\n", i+1)
		fmt.Fprintf(&buf, "  Retirement Age:       %d\n", c.RetirementAge)
		fmt.Fprintf(&buf, "  Contribution:         %s of salary\n", FormatPercentage(c.ContributionPercent.Mul(decimal.NewFromInt(100))))
		fmt.Fprintf(&buf, "  Monthly Expenses:     %s\n", FormatCurrency(c.MonthlyExpenses))
		if c.EarliestFireAge != nil {
			fmt.Fprintf(&buf, "  Earliest FIRE Age:    %d\n", *c.EarliestFireAge)
		}
		fmt.Fprintln(&buf)
	}

	return buf.String(), nil
}

type OptimizerJSONFormatter struct{}

func (ojf OptimizerJSONFormatter) Name() string { return "json" }

func (ojf OptimizerJSONFormatter) FormatCandidates(candidates []domain.OptimizationCandidate) (string, error) {
	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
