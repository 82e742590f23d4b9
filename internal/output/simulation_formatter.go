package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// SimulationFormatter renders Monte Carlo results.
type SimulationFormatter interface {
	Name() string
	FormatSimulation(result domain.SimulationResult) (string, error)
}

// NewSimulationFormatter returns the formatter for the requested format,
// defaulting to console for unknown names.
func NewSimulationFormatter(format string) SimulationFormatter {
	switch format {
	case "json":
		return SimulationJSONFormatter{}
	default:
		return SimulationConsoleFormatter{}
	}
}

type SimulationConsoleFormatter struct{}

func (scf SimulationConsoleFormatter) Name() string { return "console" }

func (scf SimulationConsoleFormatter) FormatSimulation(result domain.SimulationResult) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "MONTE CARLO SIMULATION RESULTS")
	fmt.Fprintln(&buf, "==============================")
	fmt.Fprintf(&buf, "Simulations: %d\n", result.NumSimulations)
	fmt.Fprintf(&buf, "Seed: %d\n", result.Seed)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "Success Metrics:")
	fmt.Fprintf(&buf, "  Funds Last to End Age:  %s\n", FormatPercentage(result.SuccessRate.Mul(decimal.NewFromInt(100))))
	fmt.Fprintf(&buf, "  FIRE Goal Met:          %s\n", FormatPercentage(result.GoalMetRate.Mul(decimal.NewFromInt(100))))
	fmt.Fprintln(&buf)

	writePercentiles(&buf, "Balance at Retirement Age:", result.RetirementBalances)
	writePercentiles(&buf, "Balance at FIRE Age:", result.FireAgeBalances)

	return buf.String(), nil
}

func writePercentiles(buf *bytes.Buffer, title string, s *domain.PercentileSummary) {
	if s == nil {
		return
	}
	fmt.Fprintln(buf, title)
	fmt.Fprintf(buf, "  10th Percentile: %s\n", FormatCurrency(s.P10))
	fmt.Fprintf(buf, "  50th Percentile: %s\n", FormatCurrency(s.P50))
	fmt.Fprintf(buf, "  90th Percentile: %s\n", FormatCurrency(s.P90))
	fmt.Fprintln(buf)
}

type SimulationJSONFormatter struct{}

func (sjf SimulationJSONFormatter) Name() string { return "json" }

func (sjf SimulationJSONFormatter) FormatSimulation(result domain.SimulationResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
