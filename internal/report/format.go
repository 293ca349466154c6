package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats an amount with thousands separators and no decimals.
func Money(v float64) string {
	return printer.Sprintf("%d", int64(v))
}

// BudgetLabel formats a project's budget utilisation, "n/a" without a budget.
func BudgetLabel(l ProjectLine) string {
	if !l.HasBudget {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", l.Budget)
}
