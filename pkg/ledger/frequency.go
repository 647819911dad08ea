package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
	OneTime    Frequency = "oneTime"
)

var frequencies = []Frequency{Weekly, Biweekly, Monthly, Quarterly, Semiannual, Annual, OneTime}

// Frequencies lists the supported frequencies in display order.
func Frequencies() []Frequency {
	out := make([]Frequency, len(frequencies))
	copy(out, frequencies)
	return out
}

// ParseFrequency accepts the canonical names case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range frequencies {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidValue, s)
}

var (
	fiftyTwo  = decimal.NewFromInt(52)
	twentySix = decimal.NewFromInt(26)
	twelve    = decimal.NewFromInt(12)
	three     = decimal.NewFromInt(3)
	two       = decimal.NewFromInt(2)
)

// ToMonthly converts an amount paid once per f into its monthly equivalent.
// OneTime amounts are returned unchanged; callers decide which month they land in.
func (f Frequency) ToMonthly(amount decimal.Decimal) decimal.Decimal {
	switch f {
	case Weekly:
		return amount.Mul(fiftyTwo).Div(twelve)
	case Biweekly:
		return amount.Mul(twentySix).Div(twelve)
	case Quarterly:
		return amount.Div(three)
	case Semiannual:
		return amount.Div(two)
	case Annual:
		return amount.Div(twelve)
	default:
		return amount
	}
}

// RawAmount resolves the amount an item carries in period before any frequency
// conversion: an override for the month wins, then the base value for recurring items
// or for the item's home month, otherwise zero.
func RawAmount(item Item, period Period) decimal.Decimal {
	e := item.Base()
	if !e.inYear(period.Year) {
		return decimal.Zero
	}
	if v, ok := e.MonthlyValues[strconv.Itoa(period.Month)]; ok {
		return ParseAmount(v)
	}
	if e.IsRecurring || e.homeMonth() == period.Month {
		return ParseAmount(e.BaseValue)
	}
	return decimal.Zero
}

// MonthlyEquivalent normalises item to a per-month figure for period. One-time items
// contribute their full amount in their home month only.
func MonthlyEquivalent(item Item, period Period) decimal.Decimal {
	e := item.Base()
	if e.Frequency == OneTime {
		if !e.homeIs(period) {
			return decimal.Zero
		}
		return RawAmount(item, period)
	}
	return e.Frequency.ToMonthly(RawAmount(item, period))
}
