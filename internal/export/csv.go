// Package export renders transactions as spreadsheet-friendly CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"studentmoney/internal/core"
)

// utf8BOM makes Excel and friends detect the encoding of the
// Vietnamese headers and labels.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"Ngày", "Loại", "Danh mục", "Mô tả", "Số tiền"}

// FileName returns the conventional export name for a given day,
// for example transactions_2026-08-30.csv.
func FileName(date core.Date) string {
	return fmt.Sprintf("transactions_%s.csv", date)
}

// TransactionsCSV writes the transactions as UTF-8 CSV with a leading
// byte order mark. The category column shows the category name, or
// the raw id when the category no longer exists.
func TransactionsCSV(w io.Writer, txs []core.Transaction, cats []core.Category) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, tx := range txs {
		label := "Chi"
		if tx.Type == core.Income {
			label = "Thu"
		}
		name, ok := names[tx.CategoryID]
		if !ok {
			name = tx.CategoryID
		}
		row := []string{
			tx.Date.String(),
			label,
			name,
			tx.Description,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
