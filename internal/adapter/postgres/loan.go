package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	pgdb "github.com/Temutjin2k/ride-hail-insights/pkg/postgres"
	"github.com/Temutjin2k/ride-hail-insights/pkg/trm"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoanRepo reads the driver loan table as a dataset source.
type LoanRepo struct {
	db      *pgxpool.Pool
	trm     *trm.Manager
	service string
}

func NewLoanRepo(db *pgxpool.Pool, service string) *LoanRepo {
	return &LoanRepo{
		db:      db,
		trm:     trm.New(db),
		service: service,
	}
}

func (r *LoanRepo) Source() string {
	return "postgres://driver_loans"
}

func (r *LoanRepo) Load(ctx context.Context) ([]models.Loan, error) {
	const op = "LoanRepo.Load"

	var loans []models.Loan
	start := time.Now()
	err := r.trm.DoSnapshot(ctx, func(ctx context.Context) error {
		rows, err := TxorDB(ctx, r.db).Query(ctx, `
			SELECT
				loan_id, driver_email, issued_at, due_at,
				amount_issued, amount_payable, amount_paid, outstanding_amount
			FROM driver_loans
			ORDER BY issued_at, loan_id
		`)
		if err != nil {
			return err
		}

		loans, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Loan, error) {
			var l models.Loan
			err := row.Scan(
				&l.LoanID, &l.DriverEmail, &l.IssuedAt, &l.DueAt,
				&l.AmountIssued, &l.AmountPayable, &l.AmountPaid, &l.OutstandingAmount,
			)
			return l, err
		})
		return err
	})
	metrics.RecordDatabaseQuery(r.service, "load_loans", err, time.Since(start))
	if pgdb.IsUndefinedTable(err) {
		return nil, fmt.Errorf("%s: table driver_loans does not exist, apply migrations: %w", op, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return loans, nil
}
