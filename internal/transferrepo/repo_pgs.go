// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pay-ledger/internal/accountrepo"
	"github.com/go-petr/pay-ledger/internal/domain"
	"github.com/go-petr/pay-ledger/pkg/dbpkg"
	"github.com/go-petr/pay-ledger/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transfer RepoPGS bound to an enclosing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transfer RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transfers (from_account_id, to_account_id, amount)
VALUES
    ($1, $2, $3)
RETURNING id, from_account_id, to_account_id, amount, created_at
`

// Create creates the transfer record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.FromAccountID, arg.ToAccountID, arg.Amount)

	var t domain.Transfer
	err := row.Scan(
		&t.ID,
		&t.FromAccountID,
		&t.ToAccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transfers_from_account_id_fkey", "transfers_to_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transfers_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, from_account_id, to_account_id, amount, created_at
FROM transfers
WHERE id = $1
`

// Get returns the transfer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.FromAccountID,
		&t.ToAccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransferNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT
	id, from_account_id, to_account_id, amount, created_at
FROM transfers
WHERE
    from_account_id = $1 OR to_account_id = $2
ORDER BY id
LIMIT $3 OFFSET $4
`

// List returns the transfers between the specified accounts.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery,
		arg.FromAccountID,
		arg.ToAccountID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transfer{}

	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(
			&t.ID,
			&t.FromAccountID,
			&t.ToAccountID,
			&t.Amount,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

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

// Transfer moves money between two accounts.
//
// Both account rows are locked with SELECT FOR UPDATE inside a single
// transaction, so the balance check always runs against current values and
// concurrent transfers on the same accounts cannot lose updates. The locks
// are taken in consistent id order to avoid deadlocks.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer tx.Rollback()

	accountRepo := accountrepo.NewRepoPGS(tx)

	fromAccount, _, err := lockAccounts(ctx, accountRepo, arg.FromAccountID, arg.ToAccountID)
	if err != nil {
		return result, err
	}

	currentBalance, err := decimal.NewFromString(fromAccount.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	if currentBalance.LessThan(amount) {
		l.Info().
			Int32("from_account_id", arg.FromAccountID).
			Str("amount", arg.Amount).
			Msg("insufficient balance")

		return result, domain.ErrInsufficientBalance
	}

	if arg.FromAccountID < arg.ToAccountID {
		result.FromAccount, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.FromAccountID)
		if err == nil {
			result.ToAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.ToAccountID)
		}
	} else {
		result.ToAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.ToAccountID)
		if err == nil {
			result.FromAccount, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.FromAccountID)
		}
	}

	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	txRepo := NewTxRepoPGS(tx)

	result.Transfer, err = txRepo.Create(ctx, arg)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

func lockAccounts(ctx context.Context, r *accountrepo.RepoPGS, fromID, toID int32) (domain.Account, domain.Account, error) {
	// Lock in consistent id order to avoid deadlocks
	if fromID < toID {
		fromAccount, err := r.GetForUpdate(ctx, fromID)
		if err != nil {
			return domain.Account{}, domain.Account{}, err
		}

		toAccount, err := r.GetForUpdate(ctx, toID)

		return fromAccount, toAccount, err
	}

	toAccount, err := r.GetForUpdate(ctx, toID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	fromAccount, err := r.GetForUpdate(ctx, fromID)

	return fromAccount, toAccount, err
}
