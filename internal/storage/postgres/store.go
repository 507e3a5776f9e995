// Package postgres is the networked database backend, selected only by an
// explicit DSN in the configuration. The default deployment is a single
// local user on the CSV or sqlite backend; this exists for installations
// that already run a shared database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/interfaces"
	"github.com/gbanking/gbanking/internal/models"
)

// Store implements CredentialStore and LedgerStore over PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open connects to the database and ensures the schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
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
			balance NUMERIC(18,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id        BIGSERIAL PRIMARY KEY,
			name      TEXT NOT NULL,
			type      TEXT NOT NULL,
			amount    NUMERIC(18,2) NOT NULL,
			balance   NUMERIC(18,2) NOT NULL,
			timestamp TIMESTAMP NOT NULL,
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
	const query = `SELECT salt, hashed_pin FROM credentials WHERE name = $1`

	var salt, hash string
	err := s.db.QueryRow(query, name).Scan(&salt, &hash)
	if err == sql.ErrNoRows {
		return models.Credential{}, false, nil
	}
	if err != nil {
		return models.Credential{}, false, err
	}
	return models.Credential{Name: name, Digest: models.ParseDigest(salt, hash)}, true, nil
}

func (s *Store) AppendCredential(cred models.Credential) error {
	const query = `INSERT INTO credentials (name, salt, hashed_pin) VALUES ($1, $2, $3)`

	salt, hash := cred.Digest.Columns()
	_, err := s.db.Exec(query, cred.Name, salt, hash)
	return err
}

func (s *Store) Balance(name string) (decimal.Decimal, bool, error) {
	const query = `SELECT balance FROM balances WHERE name = $1`

	var bal decimal.Decimal
	err := s.db.QueryRow(query, name).Scan(&bal)
	if err == sql.ErrNoRows {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return bal, true, nil
}

func (s *Store) SetBalance(name string, balance decimal.Decimal) error {
	const query = `INSERT INTO balances (name, balance) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET balance = EXCLUDED.balance`

	_, err := s.db.Exec(query, name, balance)
	return err
}

func (s *Store) AppendHistory(ctx context.Context, rec models.HistoryRecord) error {
	const query = `INSERT INTO history (name, type, amount, balance, timestamp, category, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		rec.Name, string(rec.Type), rec.Amount, rec.BalanceAfter,
		rec.Timestamp, string(rec.Category), rec.Note)
	return err
}

func (s *Store) HistoryByAccount(name string) ([]models.HistoryRecord, error) {
	const query = `SELECT type, amount, balance, timestamp, category, note
		FROM history WHERE name = $1 ORDER BY id`

	rows, err := s.db.Query(query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HistoryRecord
	for rows.Next() {
		rec := models.HistoryRecord{Name: name}
		var typ, category string
		if err := rows.Scan(&typ, &rec.Amount, &rec.BalanceAfter, &rec.Timestamp, &category, &rec.Note); err != nil {
			return nil, err
		}
		rec.Type = models.TransactionType(typ)
		rec.Category = models.ParseCategory(category)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

var (
	_ interfaces.CredentialStore = (*Store)(nil)
	_ interfaces.LedgerStore     = (*Store)(nil)
)
