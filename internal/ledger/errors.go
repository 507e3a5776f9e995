package ledger

import "errors"

var (
	// ErrInvalidAmount rejects zero or negative amounts before they reach
	// the store.
	ErrInvalidAmount = errors.New("amount must be greater than 0")

	// ErrInsufficientFunds rejects a withdrawal exceeding the balance.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrConfirmationDeclined aborts a large transaction the user refused.
	ErrConfirmationDeclined = errors.New("transaction declined by user")
)
