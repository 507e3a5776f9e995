package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes the two ledger operations.
type TransactionType string

const (
	Deposit    TransactionType = "Deposit"
	Withdrawal TransactionType = "Withdrawal"
)

// BalanceRecord is the single current balance row for one account.
// Updates are full overwrites, not deltas.
type BalanceRecord struct {
	Name    string
	Balance decimal.Decimal
}

// HistoryRecord is one append-only ledger row. Rows are immutable once
// written; display ordering is newest timestamp first, ties broken by the
// order rows appear in the store.
type HistoryRecord struct {
	Name         string
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Timestamp    time.Time // zero when the stored value could not be parsed
	Category     Category
	Note         string
}

// TimestampLayout is the persisted wall-clock format, second resolution.
const TimestampLayout = "2006-01-02 15:04:05"
