package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/models"
)

func TestWriteStatement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jane_statement.csv")
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	rows := []models.HistoryRecord{
		{
			Name: "Jane Doe", Type: models.Withdrawal,
			Amount:       decimal.RequireFromString("200.00"),
			BalanceAfter: decimal.RequireFromString("300.00"),
			Timestamp:    ts.Add(time.Minute), Category: "Rent",
		},
		{
			Name: "Jane Doe", Type: models.Deposit,
			Amount:       decimal.RequireFromString("500.00"),
			BalanceAfter: decimal.RequireFromString("500.00"),
			Timestamp:    ts, Category: "Salary", Note: "payday",
		},
	}

	if err := WriteStatement(path, "Jane Doe", rows); err != nil {
		t.Fatalf("WriteStatement: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 3 {
		t.Fatalf("records=%d want header + 2 rows", len(records))
	}
	if records[0][0] != "Name" {
		t.Fatalf("header=%v must lead with Name", records[0])
	}
	// Rows keep the order given (display order: newest first).
	if records[1][2] != "Withdrawal" || records[1][3] != "200.00" {
		t.Fatalf("first row=%v", records[1])
	}
	if records[2][0] != "Jane Doe" || records[2][6] != "payday" {
		t.Fatalf("second row=%v", records[2])
	}
}
