package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/fedfire/fedfire/internal/domain"
)

// CSVSummarizer implements the year-by-year CSV output (one row per projected year).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Age", "Balance", "AfterTaxValue", "RealBalance", "EmployeeContributions", "EmployerContributions", "Salary", "DeferralLimit"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, point := range report.TSP.YearlyData {
		row := []string{
			strconv.Itoa(point.Age),
			point.Balance.StringFixed(2),
			point.AfterTaxValue.StringFixed(2),
			point.RealBalance.StringFixed(2),
			point.EmployeeContributions.StringFixed(2),
			point.EmployerContributions.StringFixed(2),
			point.Salary.StringFixed(2),
			point.DeferralLimit.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}
