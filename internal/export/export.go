// Package export writes account statements to user-chosen CSV files. The
// column layout mirrors the history file with a leading Name column.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gbanking/gbanking/internal/models"
)

var header = []string{"Name", "Timestamp", "Type", "Amount", "Balance", "Category", "Note"}

// WriteStatement writes the given history rows for one account to path.
// Rows are written in the order given, so callers pass display order.
func WriteStatement(path, name string, rows []models.HistoryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create statement: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write statement header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			name,
			r.Timestamp.Format(models.TimestampLayout),
			string(r.Type),
			models.FormatMoney(r.Amount),
			models.FormatMoney(r.BalanceAfter),
			string(r.Category),
			r.Note,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write statement row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush statement: %w", err)
	}
	return nil
}
