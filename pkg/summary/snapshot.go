package summary

import (
	"github.com/wealthdesk/onboarding/pkg/ledger"
)

// Snapshot computes every total and ratio of l for one period.
func Snapshot(l ledger.Ledger, period ledger.Period) Summary {
	s := Summary{
		Period:                period,
		MonthlyIncome:         MonthlyIncome(l.Income, period),
		MonthlyExpenses:       MonthlyExpenses(l.Expenses, period),
		TotalAssets:           TotalAssets(l.Assets, period),
		TotalLiabilities:      TotalLiabilities(l.Liabilities, period),
		MonthlyPremiums:       MonthlyPremiums(l.Policies, period),
		TotalCoverage:         TotalCoverage(l.Policies, period),
		GoalContributions:     GoalContributions(l.Goals, period),
		SavingsRate:           SavingsRate(l.Income, l.Expenses, period),
		DebtToAssetRatio:      DebtToAssetRatio(l.Assets, l.Liabilities, period),
		HousingRatio:          HousingRatio(l.Income, l.Expenses, period),
		DebtToIncomeRatio:     DebtToIncomeRatio(l.Income, l.Expenses, l.Liabilities, period),
		LiquidityRatio:        LiquidityRatio(l.Assets, l.Liabilities, period),
		IncomeByCategory:      ByCategory(l.Income, period),
		ExpensesByCategory:    ByCategory(l.Expenses, period),
		AssetsByCategory:      ByCategory(l.Assets, period),
		LiabilitiesByCategory: ByCategory(l.Liabilities, period),
	}
	s.NetCashflow = s.MonthlyIncome.Sub(s.MonthlyExpenses)
	s.NetWorth = s.TotalAssets.Sub(s.TotalLiabilities)
	return s
}

// YearlyTrend returns one point per month of year, January first.
func YearlyTrend(l ledger.Ledger, year int) []TrendPoint {
	points := make([]TrendPoint, 0, 12)
	for month := 1; month <= 12; month++ {
		period := ledger.Period{Year: year, Month: month}
		income := MonthlyIncome(l.Income, period)
		expenses := MonthlyExpenses(l.Expenses, period)
		assets := TotalAssets(l.Assets, period)
		liabilities := TotalLiabilities(l.Liabilities, period)
		points = append(points, TrendPoint{
			Period:           period,
			Income:           income,
			Expenses:         expenses,
			NetCashflow:      income.Sub(expenses),
			TotalAssets:      assets,
			TotalLiabilities: liabilities,
			NetWorth:         assets.Sub(liabilities),
		})
	}
	return points
}
