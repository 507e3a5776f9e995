// Package ledger implements the balance and history operations on top of a
// LedgerStore. All amounts are fixed-point decimals with 2 fractional
// digits; rounding is half-up at every step.
package ledger

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/interfaces"
	"github.com/gbanking/gbanking/internal/models"
	"github.com/gbanking/gbanking/internal/models/events"
)

// AuditTopic is the topic transaction-completed events are published on.
const AuditTopic = "transaction_completed"

// Confirmer approves or declines a transaction at or above the suspicious
// limit before it commits. Declining aborts with no side effects.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Service executes deposits, withdrawals and history queries.
type Service struct {
	store           interfaces.LedgerStore
	publisher       interfaces.EventPublisher
	confirmer       Confirmer
	suspiciousLimit decimal.Decimal
	now             func() time.Time
}

// NewService wires a ledger store, an audit publisher and the confirmation
// surface. Amounts at or above suspiciousLimit require confirmation.
func NewService(store interfaces.LedgerStore, publisher interfaces.EventPublisher, confirmer Confirmer, suspiciousLimit decimal.Decimal) *Service {
	return &Service{
		store:           store,
		publisher:       publisher,
		confirmer:       confirmer,
		suspiciousLimit: suspiciousLimit,
		now:             time.Now,
	}
}

// Balance returns the stored balance for name, or 0.00 when no row exists.
// A missing row is an implicit new account, not an error.
func (s *Service) Balance(name string) (decimal.Decimal, error) {
	bal, found, err := s.store.Balance(name)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		return models.ToMoney(decimal.Zero), nil
	}
	return models.ToMoney(bal), nil
}

// Deposit adds amount to the account balance, appends one history row and
// returns the new balance.
func (s *Service) Deposit(ctx context.Context, name string, amount decimal.Decimal, category models.Category, note string) (decimal.Decimal, error) {
	return s.apply(ctx, name, models.Deposit, amount, category, note)
}

// Withdraw removes amount from the account balance. The amount must not
// exceed the current balance.
func (s *Service) Withdraw(ctx context.Context, name string, amount decimal.Decimal, category models.Category, note string) (decimal.Decimal, error) {
	return s.apply(ctx, name, models.Withdrawal, amount, category, note)
}

func (s *Service) apply(ctx context.Context, name string, typ models.TransactionType, amount decimal.Decimal, category models.Category, note string) (decimal.Decimal, error) {
	amount = models.ToMoney(amount)
	if amount.Cmp(decimal.Zero) <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}

	balance, err := s.Balance(name)
	if err != nil {
		return decimal.Zero, err
	}
	if typ == models.Withdrawal && amount.Cmp(balance) > 0 {
		return decimal.Zero, ErrInsufficientFunds
	}

	if amount.Cmp(s.suspiciousLimit) >= 0 {
		prompt := string(typ) + " of $" + models.FormatMoney(amount) + " flagged as suspicious. Continue?"
		if !s.confirmer.Confirm(prompt) {
			return decimal.Zero, ErrConfirmationDeclined
		}
	}

	newBalance := balance.Add(amount)
	if typ == models.Withdrawal {
		newBalance = balance.Sub(amount)
	}
	newBalance = models.ToMoney(newBalance)

	// Timestamps carry second resolution, matching the persisted format.
	ts := s.now().Truncate(time.Second)
	rec := models.HistoryRecord{
		Name:         name,
		Type:         typ,
		Amount:       amount,
		BalanceAfter: newBalance,
		Timestamp:    ts,
		Category:     category,
		Note:         note,
	}

	if err := s.store.SetBalance(name, newBalance); err != nil {
		return decimal.Zero, err
	}
	if err := s.store.AppendHistory(ctx, rec); err != nil {
		return decimal.Zero, err
	}

	s.publish(rec)
	return newBalance, nil
}

func (s *Service) publish(rec models.HistoryRecord) {
	if s.publisher == nil {
		return
	}
	evt := events.TransactionCompleted{
		TransactionID: uuid.New().String(),
		Account:       rec.Name,
		Type:          string(rec.Type),
		Amount:        rec.Amount,
		BalanceAfter:  rec.BalanceAfter,
		Category:      string(rec.Category),
		OccurredAt:    rec.Timestamp,
	}
	// Audit delivery must never fail the committed transaction.
	if err := s.publisher.Publish(AuditTopic, evt); err != nil {
		log.Printf("[WARN] publish %s event: %v", AuditTopic, err)
	}
}

// Filter narrows a history query. Zero values match everything.
type Filter struct {
	Type     models.TransactionType
	Category models.Category
}

// History returns the account's rows, optionally filtered by exact type and
// category, ordered newest first. Ties keep store order; rows whose stored
// timestamp failed to parse sort oldest. The result is a fresh snapshot of
// the store at call time.
func (s *Service) History(name string, f Filter) ([]models.HistoryRecord, error) {
	rows, err := s.store.HistoryByAccount(name)
	if err != nil {
		return nil, err
	}

	out := rows[:0:0]
	for _, r := range rows {
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
