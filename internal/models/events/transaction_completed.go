package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCompleted is emitted after a deposit or withdrawal commits.
type TransactionCompleted struct {
	TransactionID string          `json:"transaction_id"`
	Account       string          `json:"account"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Category      string          `json:"category"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
