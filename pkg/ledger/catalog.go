package ledger

import "slices"

// Category is a top-level classification with its fixed, ordered sub categories.
type Category struct {
	Name          string   `json:"name"`
	SubCategories []string `json:"subCategories"`
	// Liquid marks asset categories counted as liquid by the liquidity ratio.
	Liquid bool `json:"liquid,omitempty"`
	// ShortTerm marks liability categories counted as short-term debt.
	ShortTerm bool `json:"shortTerm,omitempty"`
	// Housing marks expense categories counted by the housing ratio.
	Housing bool `json:"housing,omitempty"`
	// DebtService marks expense categories counted as debt payments.
	DebtService bool `json:"debtService,omitempty"`
}

func (c Category) HasSubCategory(name string) bool {
	return slices.Contains(c.SubCategories, name)
}

var catalog = map[Kind][]Category{
	KindIncome: {
		{Name: "Salary/Wages", SubCategories: []string{"Base Salary", "Bonus", "Commission", "Overtime"}},
		{Name: "Business Income", SubCategories: []string{"Self-Employment", "Partnership Distributions", "Consulting"}},
		{Name: "Investment Income", SubCategories: []string{"Dividends", "Interest", "Capital Gains"}},
		{Name: "Rental Income", SubCategories: []string{"Residential", "Commercial"}},
		{Name: "Retirement Income", SubCategories: []string{"Pension", "Social Security", "Annuity", "Required Minimum Distribution"}},
		{Name: "Other Income", SubCategories: []string{"Alimony", "Child Support", "Gifts", "Other"}},
	},
	KindExpense: {
		{Name: "Housing", Housing: true, SubCategories: []string{"Rent/Mortgage", "Property Tax", "HOA Fees", "Home Insurance", "Maintenance", "Utilities"}},
		{Name: "Transportation", SubCategories: []string{"Car Payment", "Fuel", "Auto Insurance", "Maintenance", "Public Transit"}},
		{Name: "Food", SubCategories: []string{"Groceries", "Dining Out"}},
		{Name: "Healthcare", SubCategories: []string{"Insurance Premiums", "Out-of-Pocket", "Prescriptions"}},
		{Name: "Debt Payments", DebtService: true, SubCategories: []string{"Credit Card", "Student Loan", "Personal Loan", "Other Debt"}},
		{Name: "Insurance", SubCategories: []string{"Life", "Disability", "Umbrella"}},
		{Name: "Childcare & Education", SubCategories: []string{"Childcare", "Tuition", "Activities"}},
		{Name: "Personal", SubCategories: []string{"Clothing", "Personal Care", "Subscriptions"}},
		{Name: "Entertainment & Travel", SubCategories: []string{"Travel", "Hobbies", "Entertainment"}},
		{Name: "Giving", SubCategories: []string{"Charitable Donations", "Gifts"}},
		{Name: "Savings & Investments", SubCategories: []string{"Retirement Contributions", "Brokerage", "Education Savings", "Emergency Fund"}},
		{Name: "Other Expenses", SubCategories: []string{"Other"}},
	},
	KindAsset: {
		{Name: "Cash & Equivalents", Liquid: true, SubCategories: []string{"Checking Account", "Savings Account", "Money Market", "Certificates of Deposit"}},
		{Name: "Investments", SubCategories: []string{"Brokerage Account", "Stocks", "Bonds", "Mutual Funds", "ETFs"}},
		{Name: "Retirement Accounts", SubCategories: []string{"401(k)", "IRA", "Roth IRA", "Pension"}},
		{Name: "Real Estate", SubCategories: []string{"Primary Residence", "Rental Property", "Vacation Home", "Land"}},
		{Name: "Personal Property", SubCategories: []string{"Vehicles", "Jewelry", "Collectibles", "Other"}},
		{Name: "Business Interests", SubCategories: []string{"Business Equity", "Partnership Interest"}},
	},
	KindLiability: {
		{Name: "Mortgage", SubCategories: []string{"Primary Mortgage", "Second Mortgage", "HELOC"}},
		{Name: "Auto Loans", SubCategories: []string{"Auto Loan", "Auto Lease"}},
		{Name: "Student Loans", SubCategories: []string{"Federal", "Private"}},
		{Name: "Credit Cards", ShortTerm: true, SubCategories: []string{"Credit Card", "Store Card"}},
		{Name: "Personal Loans", ShortTerm: true, SubCategories: []string{"Personal Loan", "Line of Credit"}},
		{Name: "Other Debt", SubCategories: []string{"Medical Debt", "Tax Debt", "Other"}},
	},
	KindPolicy: {
		{Name: "Life Insurance", SubCategories: []string{"Term Life", "Whole Life", "Universal Life"}},
		{Name: "Health Insurance", SubCategories: []string{"Individual", "Family", "Medicare Supplement"}},
		{Name: "Disability Insurance", SubCategories: []string{"Short-Term", "Long-Term"}},
		{Name: "Long-Term Care", SubCategories: []string{"Traditional", "Hybrid"}},
		{Name: "Property & Casualty", SubCategories: []string{"Homeowners", "Auto", "Umbrella"}},
	},
	KindGoal: {
		{Name: "Retirement", SubCategories: []string{"Traditional Retirement", "Early Retirement"}},
		{Name: "Education", SubCategories: []string{"College", "Private School", "Graduate School"}},
		{Name: "Home Purchase", SubCategories: []string{"First Home", "Second Home", "Renovation"}},
		{Name: "Emergency Fund", SubCategories: []string{"Three Months", "Six Months"}},
		{Name: "Major Purchase", SubCategories: []string{"Vehicle", "Wedding", "Travel"}},
		{Name: "Legacy", SubCategories: []string{"Estate Planning", "Charitable Giving"}},
	},
}

// Categories returns the ordered categories for kind.
func Categories(kind Kind) []Category {
	return slices.Clone(catalog[kind])
}

// LookupCategory finds a category of kind by its exact name.
func LookupCategory(kind Kind, name string) (Category, bool) {
	for _, c := range catalog[kind] {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
