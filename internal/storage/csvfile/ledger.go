package csvfile

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/models"
)

// Balance returns the stored balance row for name, if any. A malformed
// stored value reads as 0.00 rather than failing.
func (s *Store) Balance(name string) (decimal.Decimal, bool, error) {
	rows, err := readRows(s.path(balanceFile))
	if err != nil {
		return decimal.Zero, false, err
	}
	for _, row := range rows {
		if row["Name"] == name {
			return parseMoney(row["Balance"]), true, nil
		}
	}
	return decimal.Zero, false, nil
}

// SetBalance upserts the single balance row for name, preserving every
// other account's row, and rewrites the file atomically.
func (s *Store) SetBalance(name string, balance decimal.Decimal) error {
	rows, err := readRows(s.path(balanceFile))
	if err != nil {
		return err
	}

	serialized := models.FormatMoney(balance)
	records := make([][]string, 0, len(rows)+1)
	updated := false
	for _, row := range rows {
		if row["Name"] == name {
			records = append(records, []string{name, serialized})
			updated = true
			continue
		}
		records = append(records, []string{row["Name"], row["Balance"]})
	}
	if !updated {
		records = append(records, []string{name, serialized})
	}

	return rewriteFile(s.path(balanceFile), balanceHeader, records)
}

// AppendHistory writes one immutable history row.
func (s *Store) AppendHistory(_ context.Context, rec models.HistoryRecord) error {
	record := []string{
		rec.Name,
		string(rec.Type),
		models.FormatMoney(rec.Amount),
		models.FormatMoney(rec.BalanceAfter),
		rec.Timestamp.Format(models.TimestampLayout),
		string(rec.Category),
		rec.Note,
	}
	return appendRow(s.path(historyFile), historyHeader, record)
}

// HistoryByAccount returns the account's rows in file order. Unknown
// categories fall back to General; unparsable timestamps become the zero
// time so they sort oldest upstream.
func (s *Store) HistoryByAccount(name string) ([]models.HistoryRecord, error) {
	rows, err := readRows(s.path(historyFile))
	if err != nil {
		return nil, err
	}

	var out []models.HistoryRecord
	for _, row := range rows {
		if row["Name"] != name {
			continue
		}
		out = append(out, models.HistoryRecord{
			Name:         name,
			Type:         models.TransactionType(row["Type"]),
			Amount:       parseMoney(row["Amount"]),
			BalanceAfter: parseMoney(row["Balance"]),
			Timestamp:    parseTimestamp(row["Timestamp"]),
			Category:     models.ParseCategory(row["Category"]),
			Note:         row["Note"],
		})
	}
	return out, nil
}
