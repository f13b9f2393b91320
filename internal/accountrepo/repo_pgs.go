// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/dbpkg"
	"github.com/anjara/banky/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountColumns = `id, owner, number, kind, balance, status, admin_comment, created_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Number,
		&a.Kind,
		&a.Balance,
		&a.Status,
		&a.AdminComment,
		&a.CreatedAt,
	)

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (owner, number, kind, balance, status)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING ` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, owner, number, kind string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, owner, number, kind, "0", domain.StatusPending)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_owner_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_number_key":
				return a, domain.ErrAccountNumberTaken
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING ` + accountColumns

// AddBalance changes the account's balance by the given signed amount and
// returns the changed account. The non-negative balance constraint makes the
// read-check-write atomic.
func (r *RepoPGS) AddBalance(ctx context.Context, amount string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNumberQuery, number)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setDecisionQuery = `
UPDATE accounts
SET status = $1, admin_comment = $2
WHERE id = $3
RETURNING ` + accountColumns

// SetDecision overwrites the account's approval status and admin comment.
func (r *RepoPGS) SetDecision(ctx context.Context, id int32, status, comment string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setDecisionQuery, status, comment, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setKindQuery = `
UPDATE accounts
SET kind = $1
WHERE id = $2
RETURNING ` + accountColumns

// SetKind updates the account kind.
func (r *RepoPGS) SetKind(ctx context.Context, id int32, kind string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setKindQuery, kind, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const listAllQuery = `
SELECT ` + accountColumns + `
FROM accounts
ORDER BY id
LIMIT $1 OFFSET $2
`

const listByOwnerQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE owner = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified number of accounts across all owners.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, listAllQuery, limit, offset)
	return r.collect(ctx, rows, err)
}

// ListByOwner returns the specified number of accounts for the given user.
func (r *RepoPGS) ListByOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, owner, limit, offset)
	return r.collect(ctx, rows, err)
}

func (r *RepoPGS) collect(ctx context.Context, rows *sql.Rows, err error) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.Owner,
			&a.Number,
			&a.Kind,
			&a.Balance,
			&a.Status,
			&a.AdminComment,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
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
