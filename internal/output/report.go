package output

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/fedfire/fedfire/internal/domain"
)

// Formatter renders a scenario report into a byte stream for one output
// format. Formatters are stateless; a single instance may be reused.
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// GetFormatterByName returns the formatter registered under the given name,
// or nil when the name is unknown.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "table", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVSummarizer{}
	default:
		return nil
	}
}

// JSONFormatter emits the full report as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
