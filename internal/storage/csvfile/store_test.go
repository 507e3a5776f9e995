package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/models"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, dir
}

func TestOpenCreatesFilesWithHeaders(t *testing.T) {
	_, dir := openTestStore(t)

	tests := []struct {
		file   string
		header string
	}{
		{"users.csv", "Name,Salt,HashedPIN"},
		{"balance.csv", "Name,Balance"},
		{"history.csv", "Name,Type,Amount,Balance,Timestamp,Category,Note"},
	}
	for _, tt := range tests {
		data, err := os.ReadFile(filepath.Join(dir, tt.file))
		if err != nil {
			t.Fatalf("%s: %v", tt.file, err)
		}
		if got := strings.TrimSpace(string(data)); got != tt.header {
			t.Errorf("%s header=%q want %q", tt.file, got, tt.header)
		}
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	cred := models.Credential{
		Name:   "Jane Doe",
		Digest: models.SaltedDigest{Salt: strings.Repeat("ab", 16), Hash: strings.Repeat("cd", 32)},
	}
	if err := s.AppendCredential(cred); err != nil {
		t.Fatal(err)
	}

	got, found, err := s.LookupCredential("Jane Doe")
	if err != nil || !found {
		t.Fatalf("LookupCredential found=%v err=%v", found, err)
	}
	if got != cred {
		t.Fatalf("got=%+v want=%+v", got, cred)
	}

	if _, found, _ := s.LookupCredential("John Smith"); found {
		t.Fatal("unexpected credential for unknown name")
	}
}

func TestLegacyRowParsesAsLegacyDigest(t *testing.T) {
	s, dir := openTestStore(t)

	// A row written by the first format has an empty Salt column.
	row := "Old Timer," + "," + strings.Repeat("ef", 32) + "\n"
	f, err := os.OpenFile(filepath.Join(dir, "users.csv"), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(row); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cred, found, err := s.LookupCredential("Old Timer")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if _, ok := cred.Digest.(models.LegacyDigest); !ok {
		t.Fatalf("digest=%T want LegacyDigest", cred.Digest)
	}
}

func TestBalanceRoundTripSerializesTwoDecimals(t *testing.T) {
	s, dir := openTestStore(t)

	if err := s.SetBalance("Jane Doe", decimal.RequireFromString("1234.5")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "balance.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Jane Doe,1234.50") {
		t.Fatalf("balance.csv=%q want row Jane Doe,1234.50", string(data))
	}

	bal, found, err := s.Balance("Jane Doe")
	if err != nil || !found {
		t.Fatalf("Balance found=%v err=%v", found, err)
	}
	if models.FormatMoney(bal) != "1234.50" {
		t.Fatalf("balance=%s want 1234.50", models.FormatMoney(bal))
	}
}

func TestSetBalancePreservesOtherRows(t *testing.T) {
	s, _ := openTestStore(t)

	if err := s.SetBalance("Jane Doe", decimal.RequireFromString("100.00")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBalance("John Smith", decimal.RequireFromString("50.00")); err != nil {
		t.Fatal(err)
	}
	// Overwrite one; the other must survive the rewrite.
	if err := s.SetBalance("Jane Doe", decimal.RequireFromString("75.25")); err != nil {
		t.Fatal(err)
	}

	jane, _, _ := s.Balance("Jane Doe")
	john, _, _ := s.Balance("John Smith")
	if models.FormatMoney(jane) != "75.25" {
		t.Fatalf("jane=%s want 75.25", models.FormatMoney(jane))
	}
	if models.FormatMoney(john) != "50.00" {
		t.Fatalf("john=%s want 50.00", models.FormatMoney(john))
	}
}

func TestMissingBalanceRow(t *testing.T) {
	s, _ := openTestStore(t)

	bal, found, err := s.Balance("Nobody Yet")
	if err != nil {
		t.Fatal(err)
	}
	if found || !bal.IsZero() {
		t.Fatalf("found=%v bal=%s want missing/zero", found, bal)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	ts := time.Date(2025, 6, 1, 12, 30, 45, 0, time.Local)
	rec := models.HistoryRecord{
		Name:         "Jane Doe",
		Type:         models.Deposit,
		Amount:       decimal.RequireFromString("500.00"),
		BalanceAfter: decimal.RequireFromString("500.00"),
		Timestamp:    ts,
		Category:     "Salary",
		Note:         "payday, june", // comma must survive CSV quoting
	}
	if err := s.AppendHistory(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendHistory(ctx, models.HistoryRecord{
		Name: "John Smith", Type: models.Deposit,
		Amount:       decimal.RequireFromString("1.00"),
		BalanceAfter: decimal.RequireFromString("1.00"),
		Timestamp:    ts, Category: models.CategoryGeneral,
	}); err != nil {
		t.Fatal(err)
	}

	rows, err := s.HistoryByAccount("Jane Doe")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d want 1", len(rows))
	}
	got := rows[0]
	if got.Note != "payday, june" || got.Category != "Salary" {
		t.Fatalf("row=%+v", got)
	}
	if !got.Timestamp.Equal(ts) {
		t.Fatalf("timestamp=%v want %v", got.Timestamp, ts)
	}
	if models.FormatMoney(got.Amount) != "500.00" {
		t.Fatalf("amount=%s want 500.00", models.FormatMoney(got.Amount))
	}
}

func TestHistoryToleratesExternalEdits(t *testing.T) {
	s, dir := openTestStore(t)

	// Hand-edited rows: unknown category, garbage timestamp.
	extra := `Jane Doe,Deposit,10.00,10.00,not-a-time,Lottery,win` + "\n"
	f, err := os.OpenFile(filepath.Join(dir, "history.csv"), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(extra); err != nil {
		t.Fatal(err)
	}
	f.Close()

	rows, err := s.HistoryByAccount("Jane Doe")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d want 1", len(rows))
	}
	if rows[0].Category != models.CategoryGeneral {
		t.Fatalf("category=%s want General fallback", rows[0].Category)
	}
	if !rows[0].Timestamp.IsZero() {
		t.Fatalf("timestamp=%v want zero for unparsable value", rows[0].Timestamp)
	}
}
