package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidPayDay indicates a pay day outside the 1 to 28 range.
	// The cap at 28 guarantees every calendar month has a matching day.
	ErrInvalidPayDay = errors.New("pay day must be between 1 and 28")
	// ErrScheduledPaymentNotFound indicates that the scheduled payment is not found.
	ErrScheduledPaymentNotFound = errors.New("scheduled payment not found")
)

// ScheduledPayment holds a recurring transfer definition keyed by day of month.
// Triggering one never mutates the definition itself, it only produces a Transfer.
type ScheduledPayment struct {
	ID            int64     `json:"id"`
	FromAccountID int32     `json:"from_account_id"`
	ToAccountID   int32     `json:"to_account_id"`
	Amount        string    `json:"amount"` // always positive
	PayDay        int32     `json:"pay_day"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateScheduledPaymentParams is the input data for a new scheduled payment.
type CreateScheduledPaymentParams struct {
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
	PayDay        int32  `json:"pay_day"`
}

// DueRun summarizes a single run over the payments due on the given day.
// Failed holds the ids of definitions whose transfer did not go through.
type DueRun struct {
	Day       int32      `json:"day"`
	Transfers []Transfer `json:"transfers"`
	Failed    []int64    `json:"failed,omitempty"`
}
