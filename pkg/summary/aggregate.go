package summary

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/wealthdesk/onboarding/pkg/ledger"
)

var hundred = decimal.NewFromInt(100)

// ByCategory sums the monthly equivalents of items per top-level category, in catalog
// order followed by unknown categories in the order they were first seen. Categories
// that add up to zero are left out.
func ByCategory[T ledger.Item](items []T, period ledger.Period) []CategoryTotal {
	var zero T
	order := make([]string, 0)
	for _, c := range ledger.Categories(zero.Kind()) {
		order = append(order, c.Name)
	}
	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		category := item.Base().Category
		if !slices.Contains(order, category) {
			order = append(order, category)
		}
		totals[category] = totals[category].Add(ledger.MonthlyEquivalent(item, period))
	}

	grand := decimal.Zero
	for _, total := range totals {
		grand = grand.Add(total)
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, category := range order {
		total, ok := totals[category]
		if !ok || total.IsZero() {
			continue
		}
		result = append(result, CategoryTotal{
			Category: category,
			Total:    total,
			Share:    percentOf(total, grand).Value,
		})
	}
	return result
}

func sumMonthly[T ledger.Item](items []T, period ledger.Period, keep func(ledger.Category) bool) decimal.Decimal {
	var zero T
	total := decimal.Zero
	for _, item := range items {
		if keep != nil {
			category, ok := ledger.LookupCategory(zero.Kind(), item.Base().Category)
			if !ok || !keep(category) {
				continue
			}
		}
		total = total.Add(ledger.MonthlyEquivalent(item, period))
	}
	return total
}

func sumBalances[T ledger.Item](items []T, period ledger.Period, keep func(ledger.Category) bool) decimal.Decimal {
	var zero T
	total := decimal.Zero
	for _, item := range items {
		if keep != nil {
			category, ok := ledger.LookupCategory(zero.Kind(), item.Base().Category)
			if !ok || !keep(category) {
				continue
			}
		}
		total = total.Add(ledger.RawAmount(item, period))
	}
	return total
}

func MonthlyIncome(income []ledger.IncomeItem, period ledger.Period) decimal.Decimal {
	return sumMonthly(income, period, nil)
}

func MonthlyExpenses(expenses []ledger.ExpenseItem, period ledger.Period) decimal.Decimal {
	return sumMonthly(expenses, period, nil)
}

func NetCashflow(income []ledger.IncomeItem, expenses []ledger.ExpenseItem, period ledger.Period) decimal.Decimal {
	return MonthlyIncome(income, period).Sub(MonthlyExpenses(expenses, period))
}

// TotalAssets sums asset balances as of period.
func TotalAssets(assets []ledger.Asset, period ledger.Period) decimal.Decimal {
	return sumBalances(assets, period, nil)
}

// TotalLiabilities sums outstanding liability balances as of period.
func TotalLiabilities(liabilities []ledger.Liability, period ledger.Period) decimal.Decimal {
	return sumBalances(liabilities, period, nil)
}

func NetWorth(assets []ledger.Asset, liabilities []ledger.Liability, period ledger.Period) decimal.Decimal {
	return TotalAssets(assets, period).Sub(TotalLiabilities(liabilities, period))
}

// MonthlyPremiums sums the monthly equivalent of every policy premium.
func MonthlyPremiums(policies []ledger.Policy, period ledger.Period) decimal.Decimal {
	return sumMonthly(policies, period, nil)
}

// TotalCoverage sums the coverage amounts of policies in force during period.
func TotalCoverage(policies []ledger.Policy, period ledger.Period) decimal.Decimal {
	total := decimal.Zero
	for _, p := range policies {
		if p.AppliesTo(period) {
			total = total.Add(ledger.ParseAmount(p.CoverageAmount))
		}
	}
	return total
}

// GoalContributions sums the planned monthly contributions towards goals.
func GoalContributions(goals []ledger.Goal, period ledger.Period) decimal.Decimal {
	return sumMonthly(goals, period, nil)
}

func housingExpenses(expenses []ledger.ExpenseItem, period ledger.Period) decimal.Decimal {
	return sumMonthly(expenses, period, func(c ledger.Category) bool { return c.Housing })
}

func debtServiceExpenses(expenses []ledger.ExpenseItem, period ledger.Period) decimal.Decimal {
	return sumMonthly(expenses, period, func(c ledger.Category) bool { return c.DebtService })
}

func liquidAssets(assets []ledger.Asset, period ledger.Period) decimal.Decimal {
	return sumBalances(assets, period, func(c ledger.Category) bool { return c.Liquid })
}

func shortTermLiabilities(liabilities []ledger.Liability, period ledger.Period) decimal.Decimal {
	return sumBalances(liabilities, period, func(c ledger.Category) bool { return c.ShortTerm })
}

func scheduledDebtPayments(liabilities []ledger.Liability, period ledger.Period) decimal.Decimal {
	total := decimal.Zero
	for _, l := range liabilities {
		if l.AppliesTo(period) {
			total = total.Add(ledger.ParseAmount(l.MonthlyPayment))
		}
	}
	return total
}
