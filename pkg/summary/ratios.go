package summary

import (
	"github.com/shopspring/decimal"
	"github.com/wealthdesk/onboarding/pkg/ledger"
)

// percentOf returns part/whole*100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) Ratio {
	if whole.IsZero() {
		return finite(decimal.Zero)
	}
	return finite(part.Div(whole).Mul(hundred))
}

// SavingsRate is net cashflow as a percentage of income.
func SavingsRate(income []ledger.IncomeItem, expenses []ledger.ExpenseItem, period ledger.Period) Ratio {
	return percentOf(NetCashflow(income, expenses, period), MonthlyIncome(income, period))
}

// DebtToAssetRatio is total liabilities as a percentage of total assets.
func DebtToAssetRatio(assets []ledger.Asset, liabilities []ledger.Liability, period ledger.Period) Ratio {
	return percentOf(TotalLiabilities(liabilities, period), TotalAssets(assets, period))
}

// HousingRatio is housing expenses as a percentage of income.
func HousingRatio(income []ledger.IncomeItem, expenses []ledger.ExpenseItem, period ledger.Period) Ratio {
	return percentOf(housingExpenses(expenses, period), MonthlyIncome(income, period))
}

// DebtToIncomeRatio is monthly debt service as a percentage of income. Debt service is
// the scheduled payments of liabilities plus expenses filed under debt payments.
func DebtToIncomeRatio(income []ledger.IncomeItem, expenses []ledger.ExpenseItem, liabilities []ledger.Liability, period ledger.Period) Ratio {
	debt := scheduledDebtPayments(liabilities, period).Add(debtServiceExpenses(expenses, period))
	return percentOf(debt, MonthlyIncome(income, period))
}

// LiquidityRatio is liquid assets over short-term liabilities. It is infinite when there
// are liquid assets and no short-term debt.
func LiquidityRatio(assets []ledger.Asset, liabilities []ledger.Liability, period ledger.Period) Ratio {
	liquid := liquidAssets(assets, period)
	shortTerm := shortTermLiabilities(liabilities, period)
	if shortTerm.IsZero() {
		if liquid.IsPositive() {
			return Ratio{Infinite: true}
		}
		return finite(decimal.Zero)
	}
	return finite(liquid.Div(shortTerm))
}
