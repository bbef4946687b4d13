// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// ErrAccountNotFound indicates that the account is not found.
var ErrAccountNotFound = errors.New("account not found")

// Account holds the balance for a single account.
//
// Balances are only ever mutated through the transfer transaction;
// the account rows are the source of truth for balance values.
type Account struct {
	ID        int32     `json:"id"`
	Owner     string    `json:"owner"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
