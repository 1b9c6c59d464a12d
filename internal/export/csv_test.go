package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"
)

func sampleWithdrawal() models.Transaction {
	account := &models.Account{Name: "Checking"}
	category := &models.Category{Name: "Groceries"}
	payee := &models.Payee{Name: "Corner Store"}
	return models.Transaction{
		Type:     models.TransactionTypeWithdrawal,
		Status:   models.TransactionStatusCompleted,
		Amount:   4550,
		Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Notes:    "weekly shop",
		Account:  account,
		Category: category,
		Payee:    payee,
	}
}

func sampleTransfer() models.Transaction {
	from := &models.Account{Name: "Checking"}
	to := &models.Account{Name: "Savings"}
	return models.Transaction{
		Type:        models.TransactionTypeTransfer,
		Status:      models.TransactionStatusCompleted,
		Amount:      20000,
		Date:        time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
		FromAccount: from,
		ToAccount:   to,
	}
}

func parseOutput(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("failed to re-parse exported CSV: %v", err)
	}
	return records
}

func TestWriteTransactions(t *testing.T) {
	t.Run("withdrawal_row", func(t *testing.T) {
		var buf bytes.Buffer
		err := WriteTransactions(&buf, []models.Transaction{sampleWithdrawal()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		records := parseOutput(t, &buf)
		if len(records) != 2 {
			t.Fatalf("expected header plus one row, got %d records", len(records))
		}
		if records[0][0] != "Date" || records[0][9] != "Notes" {
			t.Errorf("unexpected header: %v", records[0])
		}

		row := records[1]
		want := []string{"05-03-2024", "withdrawal", "45.50", "Checking", "Groceries", "Corner Store", "", "", "completed", "weekly shop"}
		for i := range want {
			if row[i] != want[i] {
				t.Errorf("column %d: expected %q, got %q", i, want[i], row[i])
			}
		}
	})

	t.Run("transfer_row_uses_from_to_columns", func(t *testing.T) {
		var buf bytes.Buffer
		err := WriteTransactions(&buf, []models.Transaction{sampleTransfer()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		row := parseOutput(t, &buf)[1]
		if row[3] != "" || row[4] != "" || row[5] != "" {
			t.Errorf("expected entry columns empty on a transfer, got %v", row)
		}
		if row[6] != "Checking" || row[7] != "Savings" {
			t.Errorf("expected from/to Checking/Savings, got %q/%q", row[6], row[7])
		}
		if row[2] != "200.00" {
			t.Errorf("expected amount 200.00, got %q", row[2])
		}
	})

	t.Run("empty_set_writes_header_only", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteTransactions(&buf, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		records := parseOutput(t, &buf)
		if len(records) != 1 {
			t.Errorf("expected only the header, got %d records", len(records))
		}
	})
}

func TestWriteGrouped(t *testing.T) {
	var buf bytes.Buffer
	groups := []Group{
		{Label: "Groceries", Transactions: []models.Transaction{sampleWithdrawal(), sampleWithdrawal()}},
		{Label: "Transfers", Transactions: []models.Transaction{sampleTransfer()}},
	}
	if err := WriteGrouped(&buf, groups); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := parseOutput(t, &buf)
	// Header, two Groceries rows, subtotal, one transfer row, subtotal.
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}
	if records[0][0] != "Group" || records[0][1] != "Date" {
		t.Errorf("unexpected grouped header: %v", records[0])
	}
	if records[1][0] != "Groceries" {
		t.Errorf("expected group label in first column, got %q", records[1][0])
	}

	subtotal := records[3]
	if subtotal[1] != "Subtotal" {
		t.Fatalf("expected subtotal row after the group, got %v", subtotal)
	}
	if subtotal[2] != "income 0.00 / expense 91.00" {
		t.Errorf("unexpected subtotal: %q", subtotal[2])
	}

	transferSubtotal := records[5]
	// Transfers contribute to neither income nor expense.
	if transferSubtotal[2] != "income 0.00 / expense 0.00" {
		t.Errorf("unexpected transfer subtotal: %q", transferSubtotal[2])
	}
}
