// Package importer parses CSV exports of ledger history into transaction
// params ready for a batch insert. The expected header is
// date,merchant,category,amount,type,payment_method in any column order;
// the payment_method column may be omitted entirely.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/ledger"
)

const dateLayout = "2006-01-02"

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.CreateParams, error) {
	utf8r, err := newUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	cols, headerIdx, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps normalized column names to their position in the row.
type colIndex map[string]int

var requiredColumns = []string{"date", "merchant", "category", "amount", "type"}

// findHeader locates the first row that carries all required columns.
// Leading junk rows (titles, blank lines) before the header are tolerated.
func findHeader(rows [][]string) (colIndex, int, error) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if hasRequiredColumns(cols) {
			return cols, rowIdx, nil
		}
	}

	return nil, 0, fmt.Errorf("no header row found: expected columns %s", strings.Join(requiredColumns, ","))
}

func hasRequiredColumns(cols colIndex) bool {
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows into create params. headerRowNum is the
// 0-based index of the header in the file, used to report 1-based row
// numbers in errors.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]ledger.CreateParams, error) {
	methodIdx, hasMethod := cols["payment_method"]

	var params []ledger.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		if isBlank(row) {
			continue
		}

		date, err := time.Parse(dateLayout, cellValue(row, cols["date"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date: %w", rowNum, err)
		}

		merchant := cellValue(row, cols["merchant"])
		if merchant == "" {
			return nil, fmt.Errorf("row %d: missing merchant", rowNum)
		}

		category := cellValue(row, cols["category"])
		if category == "" {
			return nil, fmt.Errorf("row %d: missing category", rowNum)
		}

		amount, err := decimal.NewFromString(cellValue(row, cols["amount"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount: %w", rowNum, err)
		}

		txType := ledger.Type(cellValue(row, cols["type"]))
		if txType != ledger.TypeSpend && txType != ledger.TypeEarn {
			return nil, fmt.Errorf("row %d: invalid type %q", rowNum, txType)
		}

		method := ledger.PaymentNone
		if hasMethod {
			method = ledger.PaymentMethod(cellValue(row, methodIdx))

			switch method {
			case ledger.PaymentNone, ledger.PaymentCash, ledger.PaymentFlex, ledger.PaymentSwipe:
			default:
				return nil, fmt.Errorf("row %d: invalid payment method %q", rowNum, method)
			}
		}

		params = append(params, ledger.CreateParams{
			Date:          date,
			Merchant:      merchant,
			Category:      category,
			Amount:        amount,
			Type:          txType,
			PaymentMethod: method,
			NeedsReview:   true,
		})
	}

	return params, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
