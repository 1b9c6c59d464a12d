package importer

import (
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"
)

const sampleHeader = "Date,Account,Payee,Category,Withdrawal,Deposit,Notes\n"

func parseOne(t *testing.T, row string) ParsedTransaction {
	t.Helper()
	rows, err := ParseCSV(strings.NewReader(sampleHeader + row + "\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	return rows[0]
}

func TestParseCSV(t *testing.T) {
	t.Run("withdrawal_row", func(t *testing.T) {
		p := parseOne(t, "15-03-2024,Checking,Grocery Store,Food,45.50,,weekly shop")
		if !p.Valid() {
			t.Fatalf("expected valid row, got errors: %v", p.Errors)
		}
		if p.Type != models.TransactionTypeWithdrawal {
			t.Errorf("expected withdrawal, got %s", p.Type)
		}
		if p.Amount != 4550 {
			t.Errorf("expected amount 4550, got %d", p.Amount)
		}
		if p.AccountName != "Checking" || p.PayeeName != "Grocery Store" || p.CategoryName != "Food" {
			t.Errorf("unexpected names: %q %q %q", p.AccountName, p.PayeeName, p.CategoryName)
		}
		if p.Notes != "weekly shop" {
			t.Errorf("expected notes to be carried, got %q", p.Notes)
		}
		want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		if !p.Date.Equal(want) {
			t.Errorf("expected date %v, got %v", want, p.Date)
		}
	})

	t.Run("deposit_row", func(t *testing.T) {
		p := parseOne(t, "01-03-2024,Checking,Employer,Salary,,2500.00,")
		if !p.Valid() {
			t.Fatalf("expected valid row, got errors: %v", p.Errors)
		}
		if p.Type != models.TransactionTypeDeposit {
			t.Errorf("expected deposit, got %s", p.Type)
		}
		if p.Amount != 250000 {
			t.Errorf("expected amount 250000, got %d", p.Amount)
		}
	})

	t.Run("transfer_row", func(t *testing.T) {
		p := parseOne(t, "10-03-2024,Checking,> Savings,,200.00,,")
		if !p.Valid() {
			t.Fatalf("expected valid row, got errors: %v", p.Errors)
		}
		if !p.IsTransfer || p.Type != models.TransactionTypeTransfer {
			t.Error("expected transfer classification")
		}
		if p.TransferToAccount != "Savings" {
			t.Errorf("expected destination Savings, got %q", p.TransferToAccount)
		}
		if p.Amount != 20000 {
			t.Errorf("expected amount 20000, got %d", p.Amount)
		}
		if p.Withdrawal != 0 || p.Deposit != 0 {
			t.Error("expected amount columns zeroed after transfer classification")
		}
	})

	t.Run("transfer_missing_destination", func(t *testing.T) {
		p := parseOne(t, "10-03-2024,Checking,>,,200.00,,")
		if p.Valid() {
			t.Fatal("expected error for missing transfer destination")
		}
	})

	t.Run("both_amounts", func(t *testing.T) {
		p := parseOne(t, "10-03-2024,Checking,Shop,Food,10.00,20.00,")
		if p.Valid() {
			t.Fatal("expected error when both amount columns are set")
		}
	})

	t.Run("neither_amount", func(t *testing.T) {
		p := parseOne(t, "10-03-2024,Checking,Shop,Food,,,")
		if p.Valid() {
			t.Fatal("expected error when neither amount column is set")
		}
	})

	t.Run("missing_account", func(t *testing.T) {
		p := parseOne(t, "10-03-2024,,Shop,Food,10.00,,")
		if p.Valid() {
			t.Fatal("expected error for missing account name")
		}
	})

	t.Run("quoted_fields", func(t *testing.T) {
		p := parseOne(t, `10-03-2024,Checking,"Store, Inc","Food",10.00,,"note, with comma"`)
		if !p.Valid() {
			t.Fatalf("expected valid row, got errors: %v", p.Errors)
		}
		if p.PayeeName != "Store, Inc" {
			t.Errorf("expected quoted payee preserved, got %q", p.PayeeName)
		}
		if p.Notes != "note, with comma" {
			t.Errorf("expected quoted notes preserved, got %q", p.Notes)
		}
	})

	t.Run("blank_rows_skipped", func(t *testing.T) {
		input := sampleHeader +
			"10-03-2024,Checking,Shop,Food,10.00,,\n" +
			",,,,,,\n" +
			"11-03-2024,Checking,Shop,Food,12.00,,\n"
		rows, err := ParseCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[1].Row != 3 {
			t.Errorf("expected row numbering to count the blank line, got %d", rows[1].Row)
		}
	})

	t.Run("missing_required_columns", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("Date,Account,Payee\n10-03-2024,Checking,Shop\n"))
		if err == nil {
			t.Fatal("expected error for missing required columns")
		}
		for _, want := range []string{"Category", "Withdrawal", "Deposit"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("expected error to name missing column %s, got %q", want, err.Error())
			}
		}
	})

	t.Run("empty_file", func(t *testing.T) {
		if _, err := ParseCSV(strings.NewReader("")); err == nil {
			t.Fatal("expected error for empty file")
		}
	})

	t.Run("case_insensitive_header", func(t *testing.T) {
		input := "date,ACCOUNT,Payee,category,withdrawal,DEPOSIT\n10-03-2024,Checking,Shop,Food,10.00,\n"
		rows, err := ParseCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if len(rows) != 1 || !rows[0].Valid() {
			t.Fatalf("expected 1 valid row, got %+v", rows)
		}
	})
}

func TestParseDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d, err := ParseDate("29-02-2024")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Day() != 29 || d.Month() != time.February || d.Year() != 2024 {
			t.Errorf("unexpected date: %v", d)
		}
	})

	t.Run("rejects_impossible_date", func(t *testing.T) {
		if _, err := ParseDate("31-02-2024"); err == nil {
			t.Error("expected error for 31-02-2024")
		}
	})

	t.Run("rejects_unpadded", func(t *testing.T) {
		if _, err := ParseDate("1-3-2024"); err == nil {
			t.Error("expected error for unpadded date")
		}
	})

	t.Run("rejects_iso_order", func(t *testing.T) {
		if _, err := ParseDate("2024-03-01"); err == nil {
			t.Error("expected error for YYYY-MM-DD order")
		}
	})

	t.Run("round_trips", func(t *testing.T) {
		d, err := ParseDate("05-01-2023")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if FormatDate(d) != "05-01-2023" {
			t.Errorf("expected round trip, got %s", FormatDate(d))
		}
	})
}

func TestAmounts(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"45.50", 4550},
		{"0.01", 1},
		{"2500", 250000},
		{"", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := parseAmount(c.in); got != c.want {
			t.Errorf("parseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	if got := FormatAmount(4550); got != "45.50" {
		t.Errorf("FormatAmount(4550) = %s, want 45.50", got)
	}
	if got := FormatAmount(1); got != "0.01" {
		t.Errorf("FormatAmount(1) = %s, want 0.01", got)
	}
}
