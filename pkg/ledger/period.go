package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period identifies one calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// PeriodFromStrings builds a Period from the "YYYY" and "1".."12" strings items carry.
func PeriodFromStrings(year, month string) (Period, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Period{}, fmt.Errorf("invalid year: %w", err)
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return Period{}, fmt.Errorf("invalid month: %w", err)
	}
	if m < 1 || m > 12 {
		return Period{}, ErrInvalidMonth
	}
	return Period{Year: y, Month: m}, nil
}

// Equal returns true when both the year and month match.
func (p Period) Equal(other Period) bool {
	return p.Year == other.Year && p.Month == other.Month
}

// Before reports whether p is earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// After reports whether p is later than other.
func (p Period) After(other Period) bool {
	if p.Year != other.Year {
		return p.Year > other.Year
	}
	return p.Month > other.Month
}

// YearString returns the year in the form stored on items.
func (p Period) YearString() string {
	return strconv.Itoa(p.Year)
}

// MonthString returns the month in the form used as an override key.
func (p Period) MonthString() string {
	return strconv.Itoa(p.Month)
}

// String returns the period as "2025-03".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// normalizeMonth turns "03" into "3" so that string comparisons against
// override keys and home months agree. Anything that is not a month is kept verbatim.
func normalizeMonth(month string) string {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return month
	}
	return strconv.Itoa(m)
}

// MonthKeys returns the twelve override keys "1".."12".
func MonthKeys() []string {
	keys := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		keys = append(keys, strconv.Itoa(m))
	}
	return keys
}

func isMonthKey(month string) bool {
	m, err := strconv.Atoi(month)
	return err == nil && m >= 1 && m <= 12 && strconv.Itoa(m) == month
}
