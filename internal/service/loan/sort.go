package loan

import (
	"cmp"
	"slices"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
)

// sortLoans sorts in place; loans must be a private copy.
func sortLoans(loans []models.Loan, column string, desc bool) {
	slices.SortStableFunc(loans, func(a, b models.Loan) int {
		var c int
		switch column {
		case "outstanding":
			c = cmp.Compare(a.OutstandingAmount, b.OutstandingAmount)
		case "date_due":
			c = a.DueAt.Compare(b.DueAt)
		default:
			c = a.IssuedAt.Compare(b.IssuedAt)
		}
		if desc {
			return -c
		}
		return c
	})
}
