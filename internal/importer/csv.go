// Package importer parses bank-statement style CSV files into transaction
// rows ready for reconciliation against existing accounts, categories, and
// payees.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// DateFormat is the strict date layout used by import and export files.
const DateFormat = "02-01-2006"

// requiredHeaders are the columns every import file must carry. Optional
// columns (ID, Number, Status, Tags, Notes, Last Updated, SN) are accepted;
// only Notes is consumed.
var requiredHeaders = []string{"Date", "Account", "Payee", "Category", "Withdrawal", "Deposit"}

// transferMarker prefixes a payee value to mark the row as a transfer; the
// remainder is the destination account name.
const transferMarker = ">"

// ParsedTransaction is one CSV row after parsing and classification.
// Amounts are in minor currency units. Validation problems are attached to
// Errors; rows with problems are kept so callers can display or skip them.
type ParsedTransaction struct {
	Row          int       `json:"row"`
	Date         time.Time `json:"date"`
	AccountName  string    `json:"account_name"`
	PayeeName    string    `json:"payee_name"`
	CategoryName string    `json:"category_name"`
	Withdrawal   int64     `json:"withdrawal"`
	Deposit      int64     `json:"deposit"`
	Notes        string    `json:"notes"`

	Type              models.TransactionType `json:"type"`
	Amount            int64                  `json:"amount"`
	IsTransfer        bool                   `json:"is_transfer"`
	TransferToAccount string                 `json:"transfer_to_account,omitempty"`

	Errors []string `json:"errors,omitempty"`
}

// Valid reports whether the row parsed without validation problems.
func (p *ParsedTransaction) Valid() bool {
	return len(p.Errors) == 0
}

// ParseCSV reads an import file and returns one ParsedTransaction per data
// row. The first row must be a header containing at least the required
// columns; a missing header is a validation error naming every absent
// column. Field quoting follows RFC 4180, which encoding/csv implements:
// quoted fields may contain commas and a doubled quote is a literal quote.
func ParseCSV(r io.Reader) ([]ParsedTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("malformed CSV: %v", err))
	}
	if len(records) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "file is empty")
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]ParsedTransaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		// Row numbers are 1-based over data rows, matching what users see
		// below the header in a spreadsheet.
		rows = append(rows, parseRow(i+1, rec, cols))
	}
	return rows, nil
}

// mapHeader resolves column positions case-insensitively and rejects files
// missing any required column.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, want := range requiredHeaders {
		if _, ok := cols[strings.ToLower(want)]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation,
			"missing required columns: "+strings.Join(missing, ", "))
	}
	return cols, nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func field(rec []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func parseRow(row int, rec []string, cols map[string]int) ParsedTransaction {
	p := ParsedTransaction{
		Row:          row,
		AccountName:  field(rec, cols, "account"),
		PayeeName:    field(rec, cols, "payee"),
		CategoryName: field(rec, cols, "category"),
		Notes:        field(rec, cols, "notes"),
	}

	dateStr := field(rec, cols, "date")
	date, err := ParseDate(dateStr)
	if err != nil {
		p.Errors = append(p.Errors, err.Error())
	} else {
		p.Date = date
	}

	if p.AccountName == "" {
		p.Errors = append(p.Errors, "account name is required")
	}

	p.Withdrawal = parseAmount(field(rec, cols, "withdrawal"))
	p.Deposit = parseAmount(field(rec, cols, "deposit"))

	if strings.HasPrefix(p.PayeeName, transferMarker) {
		classifyTransfer(&p)
	} else {
		classifyEntry(&p)
	}
	return p
}

// classifyTransfer marks the row as a transfer: the payee text after the
// marker is the destination account, the non-zero amount column becomes the
// transfer amount, and both columns are zeroed afterwards.
func classifyTransfer(p *ParsedTransaction) {
	p.IsTransfer = true
	p.Type = models.TransactionTypeTransfer
	p.TransferToAccount = strings.TrimSpace(strings.TrimPrefix(p.PayeeName, transferMarker))
	if p.TransferToAccount == "" {
		p.Errors = append(p.Errors, "transfer destination account is required after '>'")
	}

	switch {
	case p.Withdrawal > 0:
		p.Amount = p.Withdrawal
	case p.Deposit > 0:
		p.Amount = p.Deposit
	default:
		p.Errors = append(p.Errors, "transfer requires a withdrawal or deposit amount")
	}
	p.Withdrawal = 0
	p.Deposit = 0
}

// classifyEntry derives the deposit/withdrawal type. Exactly one of the two
// amount columns must be positive.
func classifyEntry(p *ParsedTransaction) {
	switch {
	case p.Withdrawal > 0 && p.Deposit > 0:
		p.Errors = append(p.Errors, "row has both a withdrawal and a deposit amount")
	case p.Withdrawal == 0 && p.Deposit == 0:
		p.Errors = append(p.Errors, "row has neither a withdrawal nor a deposit amount")
	case p.Withdrawal > 0:
		p.Type = models.TransactionTypeWithdrawal
		p.Amount = p.Withdrawal
	default:
		p.Type = models.TransactionTypeDeposit
		p.Amount = p.Deposit
	}
}

// ParseDate parses a strict DD-MM-YYYY date. The formatted result must
// round-trip to the input, which rejects dates like 31-02-2024 as well as
// unpadded or reordered components.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil || t.Format(DateFormat) != s {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD-MM-YYYY", s)
	}
	return t, nil
}

// FormatDate renders a date in the import file's DD-MM-YYYY layout.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// parseAmount converts a decimal string to minor currency units. Empty or
// non-numeric values are treated as zero, matching the import contract.
func parseAmount(s string) int64 {
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FormatAmount renders minor currency units as a two-decimal string, the
// inverse of parseAmount.
func FormatAmount(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}
