package wizard

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnknownPlan = errors.New("unknown plan")

type Plan struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	MonthlyFee  decimal.Decimal `json:"monthlyFee"`
	Features    []string        `json:"features"`
}

var plans = []Plan{
	{
		ID:          "essentials",
		Name:        "Essentials",
		Description: "Budgeting, cashflow review and an annual check-in.",
		MonthlyFee:  decimal.NewFromInt(99),
		Features:    []string{"Cashflow analysis", "Net worth tracking", "Annual review"},
	},
	{
		ID:          "comprehensive",
		Name:        "Comprehensive",
		Description: "Full financial plan with quarterly reviews.",
		MonthlyFee:  decimal.NewFromInt(249),
		Features:    []string{"Everything in Essentials", "Retirement projections", "Insurance review", "Quarterly reviews"},
	},
	{
		ID:          "private-wealth",
		Name:        "Private Wealth",
		Description: "Dedicated advisor and managed portfolio.",
		MonthlyFee:  decimal.NewFromInt(599),
		Features:    []string{"Everything in Comprehensive", "Investment management", "Dedicated advisor"},
	},
	{
		ID:          "tax-planning",
		Name:        "Tax Planning Add-on",
		Description: "Year-round tax strategy and return coordination.",
		MonthlyFee:  decimal.NewFromInt(75),
		Features:    []string{"Tax projections", "Preparer coordination"},
	},
	{
		ID:          "estate-planning",
		Name:        "Estate Planning Add-on",
		Description: "Will, trust and beneficiary review with partner attorneys.",
		MonthlyFee:  decimal.NewFromInt(50),
		Features:    []string{"Document review", "Beneficiary audit"},
	},
}

// Plans returns the plan catalog.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

func LookupPlan(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// MonthlyFee sums the fees of the selected plans. Unknown ids are skipped.
func MonthlyFee(selected []string) decimal.Decimal {
	total := decimal.Zero
	for _, id := range selected {
		if p, ok := LookupPlan(id); ok {
			total = total.Add(p.MonthlyFee)
		}
	}
	return total
}
