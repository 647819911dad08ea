package summary

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const infinity = "∞"

// Ratio is a derived figure that may be unbounded. Infinite ratios have a zero Value.
type Ratio struct {
	Value    decimal.Decimal
	Infinite bool
}

func finite(value decimal.Decimal) Ratio {
	return Ratio{Value: value}
}

func (r Ratio) String() string {
	if r.Infinite {
		return infinity
	}
	return r.Value.StringFixed(2)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == infinity {
		*r = Ratio{Infinite: true}
		return nil
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*r = finite(value)
	return nil
}
