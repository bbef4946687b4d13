// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pay-ledger/internal/domain"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo Repo
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo) *Service {
	return &Service{
		repo: tr,
	}
}

func (s *Service) validRequest(ctx context.Context, fromAccountID, toAccountID int32, amount string) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", amount).Msg("non-positive amount")
		return domain.ErrInvalidAmount
	}

	if fromAccountID == toAccountID {
		l.Info().Int32("account_id", fromAccountID).Msg("self transfer rejected")
		return domain.ErrSameAccountTransfer
	}

	return nil
}

// Transfer checks if the transfer request is valid and then executes the transfer.
//
// The sufficiency of the source balance is checked by the repository against
// freshly read, row-locked balances inside the transfer transaction.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	if err := s.validRequest(ctx, arg.FromAccountID, arg.ToAccountID, arg.Amount); err != nil {
		return domain.TransferTxResult{}, err
	}

	return s.repo.Transfer(ctx, arg)
}

// Get returns the transfer with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	return s.repo.Get(ctx, id)
}

// List returns the transfers between the specified accounts.
func (s *Service) List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
	return s.repo.List(ctx, arg)
}
