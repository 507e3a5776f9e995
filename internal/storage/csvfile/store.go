// Package csvfile persists credentials, balances and history as flat CSV
// files with header rows:
//
//	users.csv    Name,Salt,HashedPIN
//	balance.csv  Name,Balance
//	history.csv  Name,Type,Amount,Balance,Timestamp,Category,Note
//
// Balances are rewritten whole through a temp file and rename, so a failed
// write leaves the previous file intact. History and credentials are
// append-only.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/interfaces"
	"github.com/gbanking/gbanking/internal/models"
)

const (
	usersFile   = "users.csv"
	balanceFile = "balance.csv"
	historyFile = "history.csv"
)

var (
	usersHeader   = []string{"Name", "Salt", "HashedPIN"}
	balanceHeader = []string{"Name", "Balance"}
	historyHeader = []string{"Name", "Type", "Amount", "Balance", "Timestamp", "Category", "Note"}
)

// Store implements CredentialStore and LedgerStore over three CSV files in
// a single data directory.
type Store struct {
	dir string
}

// Open prepares the data directory, creating the files with header rows on
// first run.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir}
	for name, header := range map[string][]string{
		usersFile:   usersHeader,
		balanceFile: balanceHeader,
		historyFile: historyHeader,
	} {
		if err := ensureFile(s.path(name), header); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

func ensureFile(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

// readRows returns each data row as a column-name keyed map, tolerating
// short rows and externally edited column order.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// appendRow appends one record, writing the header first when the file is
// missing or empty.
func appendRow(path string, header, record []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header %s: %w", path, err)
		}
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

// rewriteFile replaces the whole file atomically: write a temp file in the
// same directory, then rename over the original.
func rewriteFile(path string, header []string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(header)
	for _, rec := range records {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(rec)
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rewrite %s: %w", path, writeErr)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
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
		// Unparsable timestamps sort as oldest; the zero time does that.
		return time.Time{}
	}
	return ts
}

var (
	_ interfaces.CredentialStore = (*Store)(nil)
	_ interfaces.LedgerStore     = (*Store)(nil)
)
