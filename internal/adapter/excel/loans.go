package excel

import (
	"fmt"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

const (
	colLoanID      column = "loan_id"
	colDriverEmail column = "driver_email"
	colIssuedAt    column = "date_of_issue"
	colDueAt       column = "date_due"
	colIssued      column = "amount_issued"
	colPayable     column = "amount_payable"
	colPaid        column = "amount_paid"
	colOutstanding column = "outstanding_amount"
)

var loanAliases = map[string]column{
	"loanid":            colLoanID,
	"driveremail":       colDriverEmail,
	"email":             colDriverEmail,
	"dateofissue":       colIssuedAt,
	"issuedate":         colIssuedAt,
	"datedue":           colDueAt,
	"duedate":           colDueAt,
	"amountissued":      colIssued,
	"amountpayable":     colPayable,
	"amountpaid":        colPaid,
	"outstandingamount": colOutstanding,
	"outstanding":       colOutstanding,
}

var loanRequired = []column{
	colLoanID, colDriverEmail, colIssuedAt, colDueAt,
	colIssued, colPayable, colPaid, colOutstanding,
}

// ParseLoans reads the driver loan export.
func ParseLoans(f *excelize.File, sheet string) ([]models.Loan, error) {
	all, err := rows(f, sheet)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: sheet has no header", types.ErrMissingColumn)
	}

	h, err := readHeader(all[0], loanAliases, loanRequired)
	if err != nil {
		return nil, err
	}

	loans := make([]models.Loan, 0, len(all)-1)
	err = each(all, h, func(r record) error {
		var err error
		l := models.Loan{
			LoanID:      r.str(colLoanID),
			DriverEmail: r.str(colDriverEmail),
		}
		if l.IssuedAt, err = r.date(colIssuedAt); err != nil {
			return err
		}
		if l.DueAt, err = r.date(colDueAt); err != nil {
			return err
		}
		if l.AmountIssued, err = r.float(colIssued); err != nil {
			return err
		}
		if l.AmountPayable, err = r.float(colPayable); err != nil {
			return err
		}
		if l.AmountPaid, err = r.float(colPaid); err != nil {
			return err
		}
		if l.OutstandingAmount, err = r.float(colOutstanding); err != nil {
			return err
		}
		loans = append(loans, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loans, nil
}
