// Package transactionrepo manages repository layer of transactions.
//
// Balance mutations and their transaction-log rows always commit together:
// the *Tx methods run the debit/credit pair and the log insert inside one
// database transaction and roll back fully on any mid-sequence failure.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/anjara/banky/internal/accountrepo"
	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/dbpkg"
	"github.com/anjara/banky/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const transactionColumns = `id, source_account_id, destination_account_id, type, amount, status, comment, created_at`

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var (
		t    domain.Transaction
		dest sql.NullInt32
	)

	err := row.Scan(
		&t.ID,
		&t.SourceAccountID,
		&dest,
		&t.Type,
		&t.Amount,
		&t.Status,
		&t.Comment,
		&t.CreatedAt,
	)

	t.DestinationAccountID = dest.Int32

	return t, err
}

const createQuery = `
INSERT INTO
    transactions (source_account_id, destination_account_id, type, amount, status, comment)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING ` + transactionColumns

// Create appends the transaction record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var dest sql.NullInt32
	if arg.DestinationAccountID != 0 {
		dest = sql.NullInt32{Int32: arg.DestinationAccountID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.SourceAccountID,
		dest,
		arg.Type,
		arg.Amount,
		arg.Status,
		arg.Comment,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_source_account_id_fkey", "transactions_destination_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrNegativeAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const finalizeTransferQuery = `
UPDATE transactions
SET status = $1
WHERE id = $2 AND type = $3 AND status = $4
RETURNING ` + transactionColumns

// FinalizeTransfer flips a pending transfer to the given terminal status.
// Non-transfer rows are immutable; the transition is conditional on the row
// still being pending, so of two concurrent settlements only one lands and
// the other fails with ErrTransferNotPending.
func (r *RepoPGS) FinalizeTransfer(ctx context.Context, id int64, status string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, finalizeTransferQuery, status, id, domain.TransactionTransfer, domain.TransactionPending)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			existing, getErr := r.Get(ctx, id)
			if getErr != nil {
				return t, getErr
			}

			if existing.Type != domain.TransactionTransfer {
				return t, domain.ErrNotATransfer
			}

			return t, domain.ErrTransferNotPending
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT ` + transactionColumns + `
FROM transactions
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`

const listForOwnerQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE
    source_account_id IN (SELECT id FROM accounts WHERE owner = $1)
    OR destination_account_id IN (SELECT id FROM accounts WHERE owner = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// List returns the specified number of transactions across all accounts,
// newest first.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	return r.collect(ctx, rows, err)
}

// ListForOwner returns transactions where one of the owner's accounts is the
// source or the destination, newest first.
func (r *RepoPGS) ListForOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listForOwnerQuery, owner, limit, offset)
	return r.collect(ctx, rows, err)
}

func (r *RepoPGS) collect(ctx context.Context, rows *sql.Rows, err error) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t    domain.Transaction
			dest sql.NullInt32
		)

		if err := rows.Scan(
			&t.ID,
			&t.SourceAccountID,
			&dest,
			&t.Type,
			&t.Amount,
			&t.Status,
			&t.Comment,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.DestinationAccountID = dest.Int32

		items = append(items, t)
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

func (r *RepoPGS) begin(ctx context.Context) (*sql.Tx, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return tx, nil
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		zerolog.Ctx(ctx).Error().Err(err).Send()
	}
}

// passThrough keeps account-level domain errors intact and downgrades
// everything else to ErrOperationFailed so callers see a full-rollback
// outcome, never a partial one.
func passThrough(err error) error {
	switch err {
	case domain.ErrInsufficientBalance, domain.ErrAccountNotFound:
		return err
	}

	return errorspkg.ErrOperationFailed
}

// ApplyTx mutates a single account balance by the signed delta and appends
// the transaction record within one database transaction.
func (r *RepoPGS) ApplyTx(ctx context.Context, arg domain.ApplyParams) (domain.ApplyResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.ApplyResult

	tx, err := r.begin(ctx)
	if err != nil {
		return result, err
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)

	result.Account, err = accountRepo.AddBalance(ctx, arg.Delta, arg.AccountID)
	if err != nil {
		return domain.ApplyResult{}, passThrough(err)
	}

	result.Transaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		SourceAccountID: arg.AccountID,
		Type:            arg.Type,
		Amount:          arg.Amount,
		Status:          domain.TransactionSuccess,
		Comment:         arg.Comment,
	})
	if err != nil {
		return domain.ApplyResult{}, passThrough(err)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.ApplyResult{}, errorspkg.ErrOperationFailed
	}

	return result, nil
}

// MoveTx moves the amount between two accounts and appends the transaction
// record within one database transaction.
func (r *RepoPGS) MoveTx(ctx context.Context, arg domain.MoveParams) (domain.MoveResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.MoveResult

	tx, err := r.begin(ctx)
	if err != nil {
		return result, err
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)

	result.Transaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		SourceAccountID:      arg.FromAccountID,
		DestinationAccountID: arg.ToAccountID,
		Type:                 arg.Type,
		Amount:               arg.Amount,
		Status:               domain.TransactionSuccess,
		Comment:              arg.Comment,
	})
	if err != nil {
		return domain.MoveResult{}, passThrough(err)
	}

	result.FromAccount, result.ToAccount, err = moveBalances(ctx, accountRepo, arg.FromAccountID, arg.ToAccountID, arg.Amount)
	if err != nil {
		return domain.MoveResult{}, passThrough(err)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.MoveResult{}, errorspkg.ErrOperationFailed
	}

	return result, nil
}

// SettleTx finalizes a pending transfer: it marks the row success and moves
// the funds within one database transaction. The solvency re-check happens
// implicitly through the balance constraint; on a shortfall everything rolls
// back and the row stays pending.
func (r *RepoPGS) SettleTx(ctx context.Context, id int64) (domain.MoveResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.MoveResult

	tx, err := r.begin(ctx)
	if err != nil {
		return result, err
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)

	// Claiming the pending row first serializes concurrent settlements: the
	// second UPDATE waits on the row lock, re-reads the committed status and
	// matches zero rows.
	result.Transaction, err = transactionRepo.FinalizeTransfer(ctx, id, domain.TransactionSuccess)
	if err != nil {
		return domain.MoveResult{}, err
	}

	result.FromAccount, result.ToAccount, err = moveBalances(ctx, accountRepo,
		result.Transaction.SourceAccountID, result.Transaction.DestinationAccountID, result.Transaction.Amount)
	if err != nil {
		return domain.MoveResult{}, passThrough(err)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.MoveResult{}, errorspkg.ErrOperationFailed
	}

	return result, nil
}

// moveBalances executes the debit/credit pair in consistent id order to
// avoid deadlocks between concurrent movements.
func moveBalances(ctx context.Context, r *accountrepo.RepoPGS, fromID, toID int32, amount string) (domain.Account, domain.Account, error) {
	if fromID < toID {
		from, err := r.AddBalance(ctx, "-"+amount, fromID)
		if err != nil {
			return domain.Account{}, domain.Account{}, err
		}

		to, err := r.AddBalance(ctx, amount, toID)
		if err != nil {
			return domain.Account{}, domain.Account{}, err
		}

		return from, to, nil
	}

	to, err := r.AddBalance(ctx, amount, toID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	from, err := r.AddBalance(ctx, "-"+amount, fromID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return from, to, nil
}
