// Package loanrepo manages repository layer of loans.
package loanrepo

import (
	"context"
	"database/sql"

	"github.com/anjara/banky/internal/accountrepo"
	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/internal/transactionrepo"
	"github.com/anjara/banky/pkg/dbpkg"
	"github.com/anjara/banky/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates loan repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns loan RepoPGS bound to an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns loan RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const loanColumns = `id, account_id, purpose, principal, status, created_at, repaid_at`

func scanLoan(row *sql.Row) (domain.Loan, error) {
	var (
		l        domain.Loan
		repaidAt sql.NullTime
	)

	err := row.Scan(
		&l.ID,
		&l.AccountID,
		&l.Purpose,
		&l.Principal,
		&l.Status,
		&l.CreatedAt,
		&repaidAt,
	)

	if repaidAt.Valid {
		l.RepaidAt = &repaidAt.Time
	}

	return l, err
}

const createQuery = `
INSERT INTO
    loans (account_id, purpose, principal, status)
VALUES
    ($1, $2, $3, $4)
RETURNING ` + loanColumns

// Create creates the loan request in pending status and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateLoanParams) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.AccountID, arg.Purpose, arg.Amount, domain.LoanStatusPending)

	loan, err := scanLoan(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "loans_account_id_fkey":
				return loan, domain.ErrAccountNotFound
			case "loans_principal_check":
				return loan, domain.ErrNegativeAmount
			}
		}

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const getQuery = `
SELECT ` + loanColumns + `
FROM loans
WHERE id = $1
`

// Get returns the loan with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	loan, err := scanLoan(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return loan, domain.ErrLoanNotFound
		}

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const decideQuery = `
UPDATE loans
SET status = $1
WHERE id = $2 AND status = $3
RETURNING ` + loanColumns

// Decide moves a pending loan to the given status. The transition is
// conditional on the row still being pending, so of two concurrent decisions
// only one claims the loan; the other reads zero rows and fails with
// ErrLoanAlreadyDecided.
func (r *RepoPGS) Decide(ctx context.Context, id int64, status string) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, decideQuery, status, id, domain.LoanStatusPending)

	loan, err := scanLoan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return loan, getErr
			}

			return loan, domain.ErrLoanAlreadyDecided
		}

		l.Error().Err(err).Send()

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const listQuery = `
SELECT ` + loanColumns + `
FROM loans
ORDER BY id
LIMIT $1 OFFSET $2
`

const listByOwnerQuery = `
SELECT l.id, l.account_id, l.purpose, l.principal, l.status, l.created_at, l.repaid_at
FROM loans l
JOIN accounts a ON a.id = l.account_id
WHERE a.owner = $1
ORDER BY l.id
LIMIT $2 OFFSET $3
`

// List returns the specified number of loans across all accounts.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	return r.collect(ctx, rows, err)
}

// ListByOwner returns loans on accounts owned by the given user.
func (r *RepoPGS) ListByOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, owner, limit, offset)
	return r.collect(ctx, rows, err)
}

func (r *RepoPGS) collect(ctx context.Context, rows *sql.Rows, err error) ([]domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Loan{}

	for rows.Next() {
		var (
			loan     domain.Loan
			repaidAt sql.NullTime
		)

		if err := rows.Scan(
			&loan.ID,
			&loan.AccountID,
			&loan.Purpose,
			&loan.Principal,
			&loan.Status,
			&loan.CreatedAt,
			&repaidAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if repaidAt.Valid {
			loan.RepaidAt = &repaidAt.Time
		}

		items = append(items, loan)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const decrementPrincipalQuery = `
UPDATE loans
SET principal = principal - $1
WHERE id = $2
RETURNING ` + loanColumns

const markRepaidQuery = `
UPDATE loans
SET status = $1, repaid_at = now()
WHERE id = $2
RETURNING ` + loanColumns

// DisburseTx approves a pending loan: it credits the full principal to the
// loan's account, moves the loan to in_progress and appends the disbursement
// transaction, all within one database transaction.
func (r *RepoPGS) DisburseTx(ctx context.Context, id int64) (domain.DisburseLoanResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DisburseLoanResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	loanRepo := NewTxRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewTxRepoPGS(tx)

	// Claiming the pending row first serializes concurrent decisions: the
	// second UPDATE waits on the row lock, re-reads the committed status and
	// matches zero rows.
	result.Loan, err = loanRepo.Decide(ctx, id, domain.LoanStatusInProgress)
	if err != nil {
		return domain.DisburseLoanResult{}, err
	}

	result.Account, err = accountRepo.AddBalance(ctx, result.Loan.Principal, result.Loan.AccountID)
	if err != nil {
		return domain.DisburseLoanResult{}, errorspkg.ErrOperationFailed
	}

	result.Transaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		SourceAccountID: result.Loan.AccountID,
		Type:            domain.TransactionLoanDisbursement,
		Amount:          result.Loan.Principal,
		Status:          domain.TransactionSuccess,
		Comment:         "loan disbursement",
	})
	if err != nil {
		return domain.DisburseLoanResult{}, errorspkg.ErrOperationFailed
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.DisburseLoanResult{}, errorspkg.ErrOperationFailed
	}

	return result, nil
}

// RepayTx applies a repayment: it debits the loan's account, decrements the
// remaining principal, marks the loan repaid when the principal reaches
// exactly zero and appends the repayment transaction, all within one
// database transaction.
func (r *RepoPGS) RepayTx(ctx context.Context, id int64, amount, comment string) (domain.RepayLoanResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.RepayLoanResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	loanRepo := NewTxRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewTxRepoPGS(tx)

	loan, err := loanRepo.Get(ctx, id)
	if err != nil {
		return result, err
	}

	if loan.Status != domain.LoanStatusInProgress {
		return result, domain.ErrLoanNotInProgress
	}

	result.Account, err = accountRepo.AddBalance(ctx, "-"+amount, loan.AccountID)
	if err != nil {
		if err == domain.ErrInsufficientBalance {
			return domain.RepayLoanResult{}, err
		}

		return domain.RepayLoanResult{}, errorspkg.ErrOperationFailed
	}

	row := tx.QueryRowContext(ctx, decrementPrincipalQuery, amount, id)

	result.Loan, err = scanLoan(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "loans_principal_check" {
				return domain.RepayLoanResult{}, domain.ErrRepaymentTooLarge
			}
		}

		return domain.RepayLoanResult{}, errorspkg.ErrOperationFailed
	}

	remaining, err := decimal.NewFromString(result.Loan.Principal)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.RepayLoanResult{}, errorspkg.ErrOperationFailed
	}

	if remaining.IsZero() {
		row := tx.QueryRowContext(ctx, markRepaidQuery, domain.LoanStatusRepaid, id)

		result.Loan, err = scanLoan(row)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.RepayLoanResult{}, errorspkg.ErrOperationFailed
		}
	}

	result.Transaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		SourceAccountID: loan.AccountID,
		Type:            domain.TransactionRepayment,
		Amount:          amount,
		Status:          domain.TransactionSuccess,
		Comment:         comment,
	})
	if err != nil {
		return domain.RepayLoanResult{}, errorspkg.ErrOperationFailed
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.RepayLoanResult{}, errorspkg.ErrOperationFailed
	}

	return result, nil
}
