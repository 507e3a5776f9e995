// Package sqlite is the embedded database backend, the local alternative to
// the CSV files. Schema migrations run on open.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/gbanking/gbanking/internal/interfaces"
	"github.com/gbanking/gbanking/internal/models"
)

// Store implements CredentialStore and LedgerStore over a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database file and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", path)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS credentials (
			name       TEXT PRIMARY KEY,
			salt       TEXT NOT NULL DEFAULT '',
			hashed_pin TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS balances (
			name    TEXT PRIMARY KEY,
			balance TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			name      TEXT NOT NULL,
			type      TEXT NOT NULL,
			amount    TEXT NOT NULL,
			balance   TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			category  TEXT NOT NULL,
			note      TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_name ON history(name)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) LookupCredential(name string) (models.Credential, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var salt, hash string
	err := s.db.QueryRow(`SELECT salt, hashed_pin FROM credentials WHERE name = ?`, name).Scan(&salt, &hash)
	if err == sql.ErrNoRows {
		return models.Credential{}, false, nil
	}
	if err != nil {
		return models.Credential{}, false, err
	}
	return models.Credential{Name: name, Digest: models.ParseDigest(salt, hash)}, true, nil
}

func (s *Store) AppendCredential(cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	salt, hash := cred.Digest.Columns()
	_, err := s.db.Exec(`INSERT INTO credentials (name, salt, hashed_pin) VALUES (?, ?, ?)`,
		cred.Name, salt, hash)
	return err
}

func (s *Store) Balance(name string) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored string
	err := s.db.QueryRow(`SELECT balance FROM balances WHERE name = ?`, name).Scan(&stored)
	if err == sql.ErrNoRows {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	bal, err := decimal.NewFromString(stored)
	if err != nil {
		return decimal.Zero, true, nil
	}
	return bal, true, nil
}

func (s *Store) SetBalance(name string, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO balances (name, balance) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET balance = excluded.balance`,
		name, models.FormatMoney(balance))
	return err
}

func (s *Store) AppendHistory(ctx context.Context, rec models.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO history
		(name, type, amount, balance, timestamp, category, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Name, string(rec.Type),
		models.FormatMoney(rec.Amount), models.FormatMoney(rec.BalanceAfter),
		rec.Timestamp.Format(models.TimestampLayout),
		string(rec.Category), rec.Note)
	return err
}

// HistoryByAccount returns rows in insertion order; the autoincrement id is
// the equivalent of file order in the CSV backend.
func (s *Store) HistoryByAccount(name string) ([]models.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT type, amount, balance, timestamp, category, note
		FROM history WHERE name = ? ORDER BY id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HistoryRecord
	for rows.Next() {
		var typ, amount, balance, ts, category, note string
		if err := rows.Scan(&typ, &amount, &balance, &ts, &category, &note); err != nil {
			return nil, err
		}
		rec := models.HistoryRecord{
			Name:         name,
			Type:         models.TransactionType(typ),
			Category:     models.ParseCategory(category),
			Note:         note,
			Timestamp:    parseTimestamp(ts),
			Amount:       parseMoney(amount),
			BalanceAfter: parseMoney(balance),
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return models.ToMoney(d)
}

func parseTimestamp(s string) time.Time {
	ts, err := time.ParseInLocation(models.TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return ts
}

var (
	_ interfaces.CredentialStore = (*Store)(nil)
	_ interfaces.LedgerStore     = (*Store)(nil)
)
