package wizard

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownStep = errors.New("unknown wizard step")

type Step string

const (
	StepPersonal         Step = "personal"
	StepCashflow         Step = "cashflow"
	StepBalanceSheet     Step = "balance-sheet"
	StepCurrentPolicies  Step = "current-policies"
	StepWealthProtection Step = "wealth-protection"
	StepPlanSelection    Step = "plan-selection"
	StepFinancialGoals   Step = "financial-goals"
	StepTaxPlanning      Step = "tax-planning"
	StepSummary          Step = "summary"
)

var steps = []Step{
	StepPersonal,
	StepCashflow,
	StepBalanceSheet,
	StepCurrentPolicies,
	StepWealthProtection,
	StepPlanSelection,
	StepFinancialGoals,
	StepTaxPlanning,
	StepSummary,
}

var stepTitles = map[Step]string{
	StepPersonal:         "Personal Information",
	StepCashflow:         "Cashflow",
	StepBalanceSheet:     "Balance Sheet",
	StepCurrentPolicies:  "Current Policies",
	StepWealthProtection: "Wealth Protection",
	StepPlanSelection:    "Plan Selection",
	StepFinancialGoals:   "Financial Goals",
	StepTaxPlanning:      "Tax Planning",
	StepSummary:          "Summary",
}

// Steps returns the steps in wizard order.
func Steps() []Step {
	return slices.Clone(steps)
}

func ParseStep(s string) (Step, error) {
	step := Step(s)
	if !slices.Contains(steps, step) {
		return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
	}
	return step, nil
}

// Index returns the zero-based position of s, or -1 for an unknown step.
func (s Step) Index() int {
	return slices.Index(steps, s)
}

func (s Step) Title() string {
	return stepTitles[s]
}

func (s Step) IsFirst() bool {
	return s.Index() == 0
}

func (s Step) IsLast() bool {
	return s.Index() == len(steps)-1
}
