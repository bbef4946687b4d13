// Package schedulerepo manages repository layer of scheduled payments.
package schedulerepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/pay-ledger/internal/domain"
	"github.com/go-petr/pay-ledger/pkg/dbpkg"
	"github.com/go-petr/pay-ledger/pkg/errorspkg"
)

// RepoPGS facilitates scheduled payment repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns scheduled payment RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    scheduled_payments (from_account_id, to_account_id, amount, pay_day)
VALUES
    ($1, $2, $3, $4)
RETURNING id, from_account_id, to_account_id, amount, pay_day, created_at
`

// Create creates the scheduled payment and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateScheduledPaymentParams) (domain.ScheduledPayment, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.FromAccountID, arg.ToAccountID, arg.Amount, arg.PayDay)

	var sp domain.ScheduledPayment
	err := row.Scan(
		&sp.ID,
		&sp.FromAccountID,
		&sp.ToAccountID,
		&sp.Amount,
		&sp.PayDay,
		&sp.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "scheduled_payments_from_account_id_fkey", "scheduled_payments_to_account_id_fkey":
				return sp, domain.ErrAccountNotFound
			case "scheduled_payments_amount_check":
				return sp, domain.ErrInvalidAmount
			case "scheduled_payments_pay_day_check":
				return sp, domain.ErrInvalidPayDay
			}
		}

		return sp, errorspkg.ErrInternal
	}

	return sp, nil
}

const getQuery = `
SELECT
	id, from_account_id, to_account_id, amount, pay_day, created_at
FROM scheduled_payments
WHERE id = $1
`

// Get returns the scheduled payment with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.ScheduledPayment, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var sp domain.ScheduledPayment

	err := row.Scan(
		&sp.ID,
		&sp.FromAccountID,
		&sp.ToAccountID,
		&sp.Amount,
		&sp.PayDay,
		&sp.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return sp, domain.ErrScheduledPaymentNotFound
		}

		return sp, errorspkg.ErrInternal
	}

	return sp, nil
}

const listQuery = `
SELECT
	id, from_account_id, to_account_id, amount, pay_day, created_at
FROM scheduled_payments
WHERE from_account_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the scheduled payments debiting the given account.
func (r *RepoPGS) List(ctx context.Context, fromAccountID, limit, offset int32) ([]domain.ScheduledPayment, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, fromAccountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	return scanScheduledPayments(l, rows)
}

const listDueQuery = `
SELECT
	id, from_account_id, to_account_id, amount, pay_day, created_at
FROM scheduled_payments
WHERE pay_day = $1
ORDER BY id
`

// ListDue returns every scheduled payment whose pay day equals the given day.
func (r *RepoPGS) ListDue(ctx context.Context, payDay int32) ([]domain.ScheduledPayment, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listDueQuery, payDay)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	return scanScheduledPayments(l, rows)
}

func scanScheduledPayments(l *zerolog.Logger, rows *sql.Rows) ([]domain.ScheduledPayment, error) {
	items := []domain.ScheduledPayment{}

	for rows.Next() {
		var sp domain.ScheduledPayment
		if err := rows.Scan(
			&sp.ID,
			&sp.FromAccountID,
			&sp.ToAccountID,
			&sp.Amount,
			&sp.PayDay,
			&sp.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, sp)
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
