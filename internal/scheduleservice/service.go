// Package scheduleservice manages business logic layer of scheduled payments.
package scheduleservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pay-ledger/internal/domain"
)

// Repo provides data access layer interface needed by scheduled payment service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package scheduleservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateScheduledPaymentParams) (domain.ScheduledPayment, error)
	Get(ctx context.Context, id int64) (domain.ScheduledPayment, error)
	List(ctx context.Context, fromAccountID, limit, offset int32) ([]domain.ScheduledPayment, error)
	ListDue(ctx context.Context, payDay int32) ([]domain.ScheduledPayment, error)
}

// Ledger provides the transfer operation needed to execute scheduled payments.
type Ledger interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Service facilitates scheduled payment service layer logic.
type Service struct {
	repo   Repo
	ledger Ledger
}

// New returns scheduled payment service struct to manage scheduled payment business logic.
func New(sr Repo, ledger Ledger) *Service {
	return &Service{
		repo:   sr,
		ledger: ledger,
	}
}

// Create validates and stores a new scheduled payment definition.
// No money moves until the definition is triggered.
func (s *Service) Create(ctx context.Context, arg domain.CreateScheduledPaymentParams) (domain.ScheduledPayment, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ScheduledPayment{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", arg.Amount).Msg("non-positive amount")
		return domain.ScheduledPayment{}, domain.ErrInvalidAmount
	}

	if arg.FromAccountID == arg.ToAccountID {
		l.Info().Int32("account_id", arg.FromAccountID).Msg("self transfer rejected")
		return domain.ScheduledPayment{}, domain.ErrSameAccountTransfer
	}

	if arg.PayDay < 1 || arg.PayDay > 28 {
		l.Info().Int32("pay_day", arg.PayDay).Msg("pay day out of range")
		return domain.ScheduledPayment{}, domain.ErrInvalidPayDay
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the scheduled payment with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.ScheduledPayment, error) {
	return s.repo.Get(ctx, id)
}

// List returns the scheduled payments debiting the given account.
func (s *Service) List(ctx context.Context, fromAccountID, pageSize, pageID int32) ([]domain.ScheduledPayment, error) {
	return s.repo.List(ctx, fromAccountID, pageSize, (pageID-1)*pageSize)
}

// Trigger replays the stored definition through the ledger.
//
// There is no already-paid-today guard: every trigger is an independent
// transfer, so triggering the same definition twice moves the money twice.
func (s *Service) Trigger(ctx context.Context, id int64) (domain.TransferTxResult, error) {
	sp, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return s.ledger.Transfer(ctx, domain.CreateTransferParams{
		FromAccountID: sp.FromAccountID,
		ToAccountID:   sp.ToAccountID,
		Amount:        sp.Amount,
	})
}

// RunDue executes every scheduled payment whose pay day equals the given day.
//
// Payments run strictly sequentially. A failing payment does not abort the
// run: the error is logged, the definition id is recorded in the result and
// the remaining due payments still execute. Only a failure to list the due
// definitions aborts the whole run.
func (s *Service) RunDue(ctx context.Context, day int32) (domain.DueRun, error) {
	l := zerolog.Ctx(ctx)

	run := domain.DueRun{Day: day}

	due, err := s.repo.ListDue(ctx, day)
	if err != nil {
		return run, err
	}

	for _, sp := range due {
		result, err := s.ledger.Transfer(ctx, domain.CreateTransferParams{
			FromAccountID: sp.FromAccountID,
			ToAccountID:   sp.ToAccountID,
			Amount:        sp.Amount,
		})
		if err != nil {
			l.Warn().
				Err(err).
				Int64("scheduled_payment_id", sp.ID).
				Int32("from_account_id", sp.FromAccountID).
				Str("amount", sp.Amount).
				Msg("scheduled payment failed")

			run.Failed = append(run.Failed, sp.ID)

			continue
		}

		run.Transfers = append(run.Transfers, result.Transfer)
	}

	return run, nil
}
