// Package export renders transaction sets as CSV, the inverse of the
// importer's DD-MM-YYYY / two-decimal-amount conventions so an exported
// file can round-trip through a re-import.
package export

import (
	"encoding/csv"
	"io"

	"fintrack/internal/importer"
	"fintrack/internal/models"
)

var header = []string{
	"Date", "Type", "Amount", "Account", "Category", "Payee",
	"From Account", "To Account", "Status", "Notes",
}

// WriteTransactions writes the set as flat CSV with a header row.
func WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range transactions {
		if err := cw.Write(record(&t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Group is a labeled transaction subset for grouped exports.
type Group struct {
	Label        string
	Transactions []models.Transaction
}

// WriteGrouped writes each group's rows prefixed with a Group column,
// followed by a per-group subtotal row of income and expense.
func WriteGrouped(w io.Writer, groups []Group) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Group"}, header...)); err != nil {
		return err
	}
	for _, g := range groups {
		var income, expense int64
		for _, t := range g.Transactions {
			if err := cw.Write(append([]string{g.Label}, record(&t)...)); err != nil {
				return err
			}
			switch t.Type {
			case models.TransactionTypeDeposit:
				income += t.Amount
			case models.TransactionTypeWithdrawal:
				expense += t.Amount
			}
		}
		subtotal := make([]string, len(header)+1)
		subtotal[0] = g.Label
		subtotal[1] = "Subtotal"
		subtotal[2] = "income " + importer.FormatAmount(income) + " / expense " + importer.FormatAmount(expense)
		if err := cw.Write(subtotal); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(t *models.Transaction) []string {
	var account, category, payee, from, to string
	if t.Account != nil {
		account = t.Account.Name
	}
	if t.Category != nil {
		category = t.Category.Name
	}
	if t.Payee != nil {
		payee = t.Payee.Name
	}
	if t.FromAccount != nil {
		from = t.FromAccount.Name
	}
	if t.ToAccount != nil {
		to = t.ToAccount.Name
	}
	return []string{
		importer.FormatDate(t.Date),
		string(t.Type),
		importer.FormatAmount(t.Amount),
		account,
		category,
		payee,
		from,
		to,
		string(t.Status),
		t.Notes,
	}
}
