package summary

import (
	"github.com/shopspring/decimal"
	"github.com/wealthdesk/onboarding/pkg/ledger"
)

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	// Share is the category's percentage of the group total.
	Share decimal.Decimal `json:"share"`
}

type Summary struct {
	Period                ledger.Period   `json:"period"`
	MonthlyIncome         decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses       decimal.Decimal `json:"monthlyExpenses"`
	NetCashflow           decimal.Decimal `json:"netCashflow"`
	TotalAssets           decimal.Decimal `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
	NetWorth              decimal.Decimal `json:"netWorth"`
	MonthlyPremiums       decimal.Decimal `json:"monthlyPremiums"`
	TotalCoverage         decimal.Decimal `json:"totalCoverage"`
	GoalContributions     decimal.Decimal `json:"goalContributions"`
	SavingsRate           Ratio           `json:"savingsRate"`
	DebtToAssetRatio      Ratio           `json:"debtToAssetRatio"`
	HousingRatio          Ratio           `json:"housingRatio"`
	DebtToIncomeRatio     Ratio           `json:"debtToIncomeRatio"`
	LiquidityRatio        Ratio           `json:"liquidityRatio"`
	IncomeByCategory      []CategoryTotal `json:"incomeByCategory"`
	ExpensesByCategory    []CategoryTotal `json:"expensesByCategory"`
	AssetsByCategory      []CategoryTotal `json:"assetsByCategory"`
	LiabilitiesByCategory []CategoryTotal `json:"liabilitiesByCategory"`
}

// TrendPoint holds the headline totals of one month of a yearly trend.
type TrendPoint struct {
	Period           ledger.Period   `json:"period"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetCashflow      decimal.Decimal `json:"netCashflow"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}
