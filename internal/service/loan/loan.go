package loan

import (
	"sort"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Apply narrows loans by id, driver email and issue day (inclusive).
func Apply(loans []models.Loan, f models.LoanFilter) []models.Loan {
	out := make([]models.Loan, 0, len(loans))
	for _, l := range loans {
		if !models.IsWildcard(f.LoanID) && l.LoanID != f.LoanID {
			continue
		}
		if !models.IsWildcard(f.DriverEmail) && l.DriverEmail != f.DriverEmail {
			continue
		}
		day := models.Day(l.IssuedAt)
		if !f.IssuedFrom.IsZero() && day.Before(models.Day(f.IssuedFrom)) {
			continue
		}
		if !f.IssuedTo.IsZero() && day.After(models.Day(f.IssuedTo)) {
			continue
		}
		out = append(out, l)
	}
	return out
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders money with grouped thousands and two decimals.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Aggregate sums the portfolio. A loan is due when its due date is
// strictly before now.
func Aggregate(loans []models.Loan, now time.Time) models.LoanKPI {
	var k models.LoanKPI
	for _, l := range loans {
		k.Loans++
		k.TotalIssued += l.AmountIssued
		k.TotalPayable += l.AmountPayable
		k.TotalPaid += l.AmountPaid
		k.TotalOutstanding += l.OutstandingAmount

		if l.DueAt.Before(now) {
			k.LoansDue++
			k.DuePaid += l.AmountPaid
			k.DueOutstanding += l.OutstandingAmount
		}
	}

	k.Formatted = map[string]string{
		"total_amount_issued":      FormatAmount(k.TotalIssued),
		"total_amount_payable":     FormatAmount(k.TotalPayable),
		"total_amount_paid":        FormatAmount(k.TotalPaid),
		"total_outstanding_amount": FormatAmount(k.TotalOutstanding),
		"due_amount_paid":          FormatAmount(k.DuePaid),
		"due_outstanding_amount":   FormatAmount(k.DueOutstanding),
	}
	return k
}

// DailyIssued sums amount issued per calendar day from the first to the
// last issue day. Days without loans are present with 0.
func DailyIssued(loans []models.Loan) []models.DailyIssued {
	if len(loans) == 0 {
		return []models.DailyIssued{}
	}

	sums := make(map[time.Time]float64)
	first, last := models.Day(loans[0].IssuedAt), models.Day(loans[0].IssuedAt)
	for _, l := range loans {
		day := models.Day(l.IssuedAt)
		sums[day] += l.AmountIssued
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	out := make([]models.DailyIssued, 0, int(last.Sub(first).Hours()/24)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		out = append(out, models.DailyIssued{Day: day, Amount: sums[day]})
	}
	return out
}

// Options lists the sidebar values of the full loan dataset.
func Options(loans []models.Loan) models.LoanOptions {
	var (
		ids    = map[string]struct{}{}
		emails = map[string]struct{}{}
		opts   models.LoanOptions
	)
	for i, l := range loans {
		ids[l.LoanID] = struct{}{}
		emails[l.DriverEmail] = struct{}{}

		day := models.Day(l.IssuedAt)
		if i == 0 || day.Before(opts.IssuedMin) {
			opts.IssuedMin = day
		}
		if i == 0 || day.After(opts.IssuedMax) {
			opts.IssuedMax = day
		}
	}
	opts.LoanIDs = sortedKeys(ids)
	opts.DriverEmails = sortedKeys(emails)
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
