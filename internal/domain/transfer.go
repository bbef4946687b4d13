package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates that the amount is unparseable, zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the source account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccountTransfer indicates a transfer where source and destination are the same account.
	ErrSameAccountTransfer = errors.New("source and destination accounts must differ")
	// ErrTransferNotFound indicates that the transfer is not found.
	ErrTransferNotFound = errors.New("transfer not found")
)

// Transfer holds a completed balance movement between two accounts.
// Transfer rows are append-only and never updated or deleted.
type Transfer struct {
	ID            int64     `json:"id"`
	FromAccountID int32     `json:"from_account_id"`
	ToAccountID   int32     `json:"to_account_id"`
	Amount        string    `json:"amount"` // always positive
	CreatedAt     time.Time `json:"created_at"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// ListTransfersParams is the input data to get transfers between two accounts.
type ListTransfersParams struct {
	FromAccountID int32 `json:"from_account_id"`
	ToAccountID   int32 `json:"to_account_id"`
	Limit         int32 `json:"limit"`
	Offset        int32 `json:"offset"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Transfer    Transfer `json:"transfer"`
	FromAccount Account  `json:"from_account"`
	ToAccount   Account  `json:"to_account"`
}
