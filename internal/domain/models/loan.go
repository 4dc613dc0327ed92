package models

import (
	"time"

	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
)

type Loan struct {
	LoanID            string    `json:"loan_id"`
	DriverEmail       string    `json:"driver_email"`
	IssuedAt          time.Time `json:"date_of_issue"`
	DueAt             time.Time `json:"date_due"`
	AmountIssued      float64   `json:"amount_issued"`
	AmountPayable     float64   `json:"amount_payable"`
	AmountPaid        float64   `json:"amount_paid"`
	OutstandingAmount float64   `json:"outstanding_amount"`
}

// LoanFilter narrows the loan dataset. "All"/empty and zero dates are wildcards.
type LoanFilter struct {
	LoanID      string    `json:"loan_id,omitempty"`
	DriverEmail string    `json:"driver_email,omitempty"`
	IssuedFrom  time.Time `json:"issued_from,omitzero"`
	IssuedTo    time.Time `json:"issued_to,omitzero"`
}

func (f LoanFilter) Validate(v *validator.Validator) {
	if !f.IssuedFrom.IsZero() && !f.IssuedTo.IsZero() {
		v.Check(!f.IssuedTo.Before(f.IssuedFrom), "issued_to", "must not be before issued_from")
	}
}

type LoanKPI struct {
	Loans            int     `json:"loans"`
	TotalIssued      float64 `json:"total_amount_issued"`
	TotalPayable     float64 `json:"total_amount_payable"`
	TotalPaid        float64 `json:"total_amount_paid"`
	TotalOutstanding float64 `json:"total_outstanding_amount"`

	LoansDue       int     `json:"loans_due"`
	DuePaid        float64 `json:"due_amount_paid"`
	DueOutstanding float64 `json:"due_outstanding_amount"`

	// Display strings with grouped thousands.
	Formatted map[string]string `json:"formatted"`
}

type DailyIssued struct {
	Day    time.Time `json:"day"`
	Amount float64   `json:"amount_issued"`
}

type LoanOptions struct {
	LoanIDs      []string  `json:"loan_ids"`
	DriverEmails []string  `json:"driver_emails"`
	IssuedMin    time.Time `json:"issued_min"`
	IssuedMax    time.Time `json:"issued_max"`
}
