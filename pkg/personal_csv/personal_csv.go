package personal_csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/pkg/ledger"
)

var ErrEmptyFile = errors.New("csv file is empty")

// Table is a parsed CSV file.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Target is a field a column can be mapped to.
type Target struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Mapping maps a column index to a target key. Columns without an entry are ignored.
type Mapping map[int]string

// Record is one imported row, tagged with the period selected at import time.
type Record struct {
	Period ledger.Period     `json:"period"`
	Values map[string]string `json:"values"`
}

// Parse reads a CSV document. Without headers the columns are named "Column 1",
// "Column 2" and so on. Rows may have different lengths.
func Parse(r io.Reader, hasHeaders bool) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		log.Debugf("Error reading csv: %v", err)
		return Table{}, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, ErrEmptyFile
	}

	table := Table{Rows: make([][]string, 0, len(records))}
	if hasHeaders {
		table.Headers = records[0]
		records = records[1:]
	} else {
		width := 0
		for _, record := range records {
			width = max(width, len(record))
		}
		table.Headers = make([]string, width)
		for i := range width {
			table.Headers[i] = fmt.Sprintf("Column %d", i+1)
		}
	}
	table.Rows = append(table.Rows, records...)
	return table, nil
}

// AutoMap maps every header whose trimmed text equals a target's label or key, ignoring
// case. Each target is used at most once.
func AutoMap(headers []string, targets []Target) Mapping {
	mapping := Mapping{}
	used := map[string]bool{}
	for i, header := range headers {
		header = strings.TrimSpace(header)
		for _, target := range targets {
			if used[target.Key] {
				continue
			}
			if strings.EqualFold(header, target.Label) || strings.EqualFold(header, target.Key) {
				mapping[i] = target.Key
				used[target.Key] = true
				break
			}
		}
	}
	return mapping
}

// Import turns every row of table into a Record tagged with period.
func Import(table Table, mapping Mapping, period ledger.Period) []Record {
	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := make(map[string]string, len(mapping))
		for column, key := range mapping {
			if column >= 0 && column < len(row) {
				values[key] = row[column]
			}
		}
		records = append(records, Record{Period: period, Values: values})
	}
	return records
}

func write(rows ...[]string) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
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
