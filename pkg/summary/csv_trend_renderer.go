package summary

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/pkg/ledger"
)

type TrendRenderer interface {
	RenderTrend(points []TrendPoint) (string, error)
}

type CsvTrendRenderer struct {
}

func NewCsvTrendRenderer() *CsvTrendRenderer {
	return &CsvTrendRenderer{}
}

var trendHeader = []string{"Month", "Income", "Expenses", "Net cashflow", "Assets", "Liabilities", "Net worth"}

func (r *CsvTrendRenderer) RenderTrend(points []TrendPoint) (string, error) {
	data := make([][]string, 0, len(points)+1)
	data = append(data, trendHeader)
	for _, p := range points {
		data = append(data, []string{
			p.Period.String(),
			ledger.FormatAmount(p.Income),
			ledger.FormatAmount(p.Expenses),
			ledger.FormatAmount(p.NetCashflow),
			ledger.FormatAmount(p.TotalAssets),
			ledger.FormatAmount(p.TotalLiabilities),
			ledger.FormatAmount(p.NetWorth),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
