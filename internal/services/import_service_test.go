package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/importer"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func newImportService(db *gorm.DB) ImportServicer {
	accountService := NewAccountService(db)
	return NewImportService(
		db,
		accountService,
		NewCategoryService(db),
		NewPayeeService(db),
		NewTransactionService(db, accountService),
	)
}

func withdrawalRow(row int, day time.Time, account, payee, category string, amount int64) importer.ParsedTransaction {
	return importer.ParsedTransaction{
		Row:          row,
		Date:         day,
		AccountName:  account,
		PayeeName:    payee,
		CategoryName: category,
		Type:         models.TransactionTypeWithdrawal,
		Amount:       amount,
	}
}

func TestImportBatch(t *testing.T) {
	t.Run("creates_missing_categories_and_payees", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		rows := []importer.ParsedTransaction{
			withdrawalRow(1, date(2024, time.March, 1), "Checking", "Corner Store", "Groceries", 4550),
			withdrawalRow(2, date(2024, time.March, 2), "Checking", "Corner Store", "Groceries", 1200),
		}

		results, err := svc.ImportBatch(user.ID, rows, ImportOptions{
			CreateMissingCategories: true,
			CreateMissingPayees:     true,
		}, nil)
		testutil.AssertNoError(t, err)

		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if !results[0].Success || !results[1].Success {
			t.Fatalf("expected both rows to succeed: %+v", results)
		}
		// Only the first row creates; the second reuses.
		if !results[0].CreatedCategory || !results[0].CreatedPayee {
			t.Error("expected first row to create the category and payee")
		}
		if results[1].CreatedCategory || results[1].CreatedPayee {
			t.Error("expected second row to reuse the category and payee")
		}

		summary := Summarize(results)
		if summary.CreatedCategories != 1 || summary.CreatedPayees != 1 {
			t.Errorf("expected 1 created category and payee, got %d/%d", summary.CreatedCategories, summary.CreatedPayees)
		}
		if summary.Withdrawals != 2 {
			t.Errorf("expected 2 withdrawals, got %d", summary.Withdrawals)
		}
	})

	t.Run("missing_category_fails_row_when_creation_disabled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		rows := []importer.ParsedTransaction{
			withdrawalRow(1, date(2024, time.March, 1), "Checking", "", "Groceries", 4550),
		}

		results, err := svc.ImportBatch(user.ID, rows, ImportOptions{}, nil)
		testutil.AssertNoError(t, err)
		if results[0].Success {
			t.Fatal("expected row to fail")
		}
		if results[0].Error == "" {
			t.Error("expected a failure message on the result")
		}
	})

	t.Run("failing_rows_do_not_abort_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		invalid := importer.ParsedTransaction{Row: 2, Errors: []string{"exactly one of Withdrawal or Deposit must be set"}}
		rows := []importer.ParsedTransaction{
			withdrawalRow(1, date(2024, time.March, 1), "Checking", "", "Groceries", 4550),
			invalid,
			withdrawalRow(3, date(2024, time.March, 3), "Unknown Account", "", "Groceries", 100),
			withdrawalRow(4, date(2024, time.March, 4), "Checking", "", "Groceries", 1200),
		}

		results, err := svc.ImportBatch(user.ID, rows, ImportOptions{CreateMissingCategories: true}, nil)
		testutil.AssertNoError(t, err)

		summary := Summarize(results)
		if summary.Total != 4 || summary.Successful != 2 || summary.Failed != 2 {
			t.Errorf("expected 4 rows with 2 successes and 2 failures, got %+v", summary)
		}
		if !results[3].Success {
			t.Error("expected the row after a failure to still import")
		}
	})

	t.Run("transfer_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		checking := testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")
		savings := testutil.CreateTestNamedAccount(t, db, user.ID, "Savings")

		rows := []importer.ParsedTransaction{
			{
				Row:               1,
				Date:              date(2024, time.March, 1),
				AccountName:       "Checking",
				Type:              models.TransactionTypeTransfer,
				Amount:            20000,
				IsTransfer:        true,
				TransferToAccount: "Savings",
			},
		}

		results, err := svc.ImportBatch(user.ID, rows, ImportOptions{}, nil)
		testutil.AssertNoError(t, err)
		if !results[0].Success {
			t.Fatalf("expected transfer row to succeed: %s", results[0].Error)
		}

		transaction := results[0].Transaction
		if transaction.FromAccountID == nil || *transaction.FromAccountID != checking.ID {
			t.Error("expected transfer source to resolve to Checking")
		}
		if transaction.ToAccountID == nil || *transaction.ToAccountID != savings.ID {
			t.Error("expected transfer destination to resolve to Savings")
		}
	})

	t.Run("transfer_to_unknown_account_fails_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		rows := []importer.ParsedTransaction{
			{
				Row:               1,
				Date:              date(2024, time.March, 1),
				AccountName:       "Checking",
				Type:              models.TransactionTypeTransfer,
				Amount:            20000,
				IsTransfer:        true,
				TransferToAccount: "Nonexistent",
			},
		}

		results, err := svc.ImportBatch(user.ID, rows, ImportOptions{}, nil)
		testutil.AssertNoError(t, err)
		if results[0].Success {
			t.Fatal("expected row to fail")
		}
	})

	t.Run("skip_duplicates_within_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		same := withdrawalRow(1, date(2024, time.March, 1), "Checking", "Corner Store", "Groceries", 4550)
		second := same
		second.Row = 2

		results, err := svc.ImportBatch(user.ID, []importer.ParsedTransaction{same, second}, ImportOptions{
			CreateMissingCategories: true,
			CreateMissingPayees:     true,
			SkipDuplicates:          true,
		}, nil)
		testutil.AssertNoError(t, err)

		if !results[0].Success {
			t.Fatalf("expected first row to succeed: %s", results[0].Error)
		}
		if !results[1].Skipped {
			t.Error("expected second identical row to be skipped")
		}
	})

	t.Run("skip_duplicates_against_existing_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Groceries")
		testutil.CreateTestWithdrawal(t, db, user.ID, account, category, 4550, date(2024, time.March, 1))

		rows := []importer.ParsedTransaction{
			withdrawalRow(1, date(2024, time.March, 1), "Checking", "", "Groceries", 4550),
		}

		results, err := svc.ImportBatch(user.ID, rows, ImportOptions{SkipDuplicates: true}, nil)
		testutil.AssertNoError(t, err)
		if !results[0].Skipped {
			t.Errorf("expected row matching an existing transaction to be skipped, got %+v", results[0])
		}
	})

	t.Run("duplicates_imported_when_skip_disabled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		same := withdrawalRow(1, date(2024, time.March, 1), "Checking", "", "Groceries", 4550)
		second := same
		second.Row = 2

		results, err := svc.ImportBatch(user.ID, []importer.ParsedTransaction{same, second}, ImportOptions{
			CreateMissingCategories: true,
		}, nil)
		testutil.AssertNoError(t, err)
		if !results[0].Success || !results[1].Success {
			t.Errorf("expected both identical rows to import, got %+v", results)
		}
	})

	t.Run("progress_callback", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		rows := []importer.ParsedTransaction{
			withdrawalRow(1, date(2024, time.March, 1), "Checking", "", "Groceries", 100),
			withdrawalRow(2, date(2024, time.March, 2), "Checking", "", "Groceries", 200),
			{Row: 3, Errors: []string{"bad row"}},
		}

		var calls [][2]int
		_, err := svc.ImportBatch(user.ID, rows, ImportOptions{CreateMissingCategories: true}, func(done, total int) {
			calls = append(calls, [2]int{done, total})
		})
		testutil.AssertNoError(t, err)

		// Progress fires after every row, including failures.
		want := [][2]int{{1, 3}, {2, 3}, {3, 3}}
		if len(calls) != len(want) {
			t.Fatalf("expected %d progress calls, got %d", len(want), len(calls))
		}
		for i := range want {
			if calls[i] != want[i] {
				t.Errorf("expected progress call %d to be %v, got %v", i, want[i], calls[i])
			}
		}
	})

	t.Run("new_payee_carries_category_hint", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newImportService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Checking")

		rows := []importer.ParsedTransaction{
			withdrawalRow(1, date(2024, time.March, 1), "Checking", "Corner Store", "Groceries", 4550),
		}

		_, err := svc.ImportBatch(user.ID, rows, ImportOptions{
			CreateMissingCategories: true,
			CreateMissingPayees:     true,
		}, nil)
		testutil.AssertNoError(t, err)

		var payee models.Payee
		if err := db.First(&payee, "user_id = ? AND name = ?", user.ID, "Corner Store").Error; err != nil {
			t.Fatalf("failed to load created payee: %v", err)
		}
		if payee.CategoryHint != "Groceries" {
			t.Errorf("expected category hint Groceries, got %q", payee.CategoryHint)
		}
	})
}

func TestSummarize(t *testing.T) {
	results := []ImportResult{
		{Success: true, Row: importer.ParsedTransaction{Type: models.TransactionTypeDeposit}},
		{Success: true, Row: importer.ParsedTransaction{Type: models.TransactionTypeWithdrawal}, CreatedCategory: true},
		{Success: true, Row: importer.ParsedTransaction{Type: models.TransactionTypeTransfer}},
		{Skipped: true},
		{Error: "bad row"},
	}

	summary := Summarize(results)
	if summary.Total != 5 {
		t.Errorf("expected total 5, got %d", summary.Total)
	}
	if summary.Successful != 3 || summary.Failed != 1 || summary.Skipped != 1 {
		t.Errorf("unexpected outcome counts: %+v", summary)
	}
	if summary.Successful+summary.Failed+summary.Skipped != summary.Total {
		t.Error("expected outcome counts to sum to the total")
	}
	if summary.Deposits != 1 || summary.Withdrawals != 1 || summary.Transfers != 1 {
		t.Errorf("unexpected type counts: %+v", summary)
	}
	if summary.CreatedCategories != 1 {
		t.Errorf("expected 1 created category, got %d", summary.CreatedCategories)
	}
}
