package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid_checking", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, "Everyday", models.AccountTypeChecking, "USD", 10000, nil)
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected non-empty account ID")
		}
		if account.Balance != 10000 || account.InitialBalance != 10000 {
			t.Errorf("expected balance and initial balance 10000, got %d/%d", account.Balance, account.InitialBalance)
		}
		if !account.IsActive {
			t.Error("expected account to be active")
		}
	})

	t.Run("default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, "No Currency", models.AccountTypeCash, "", 0, nil)
		testutil.AssertNoError(t, err)
		if account.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", account.Currency)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "", models.AccountTypeChecking, "USD", 0, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("credit_card_requires_billing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "Visa", models.AccountTypeCreditCard, "USD", 0, nil)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("credit_card_with_billing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, "Visa", models.AccountTypeCreditCard, "USD", 0, &BillingSettings{
			BillGenerationDay:  1,
			BillDueDay:         21,
			InterestRate:       0.18,
			MinimumPaymentRate: 0.05,
		})
		testutil.AssertNoError(t, err)
		if account.BillGenerationDay != 1 || account.BillDueDay != 21 {
			t.Errorf("expected billing days 1/21, got %d/%d", account.BillGenerationDay, account.BillDueDay)
		}
	})

	t.Run("rejects_invalid_billing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "Visa", models.AccountTypeCreditCard, "USD", 0, &BillingSettings{
			BillGenerationDay:  0,
			BillDueDay:         45,
			MinimumPaymentRate: 1.5,
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects_due_equal_generation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "Visa", models.AccountTypeCreditCard, "USD", 0, &BillingSettings{
			BillGenerationDay: 15,
			BillDueDay:        15,
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestGetUserAccounts(t *testing.T) {
	t.Run("returns_user_accounts_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		testutil.CreateTestAccount(t, db, user1.ID)
		testutil.CreateTestAccount(t, db, user1.ID)
		testutil.CreateTestAccount(t, db, user2.ID)

		result, err := svc.GetUserAccounts(user1.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 2 {
			t.Errorf("expected 2 accounts, got %d", len(result.Data))
		}
	})

	t.Run("excludes_inactive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account := testutil.CreateTestAccount(t, db, user.ID)
		testutil.AssertNoError(t, svc.DeactivateAccount(user.ID, account.ID))

		result, err := svc.GetUserAccounts(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 0 {
			t.Errorf("expected no active accounts, got %d", len(result.Data))
		}
	})
}

func TestGetAccountByName(t *testing.T) {
	t.Run("case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user.ID, "Main Checking")

		account, err := svc.GetAccountByName(user.ID, "main checking")
		testutil.AssertNoError(t, err)
		if account.Name != "Main Checking" {
			t.Errorf("expected Main Checking, got %s", account.Name)
		}
	})

	t.Run("not_found_names_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetAccountByName(user.ID, "Missing")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		testutil.CreateTestNamedAccount(t, db, user1.ID, "Shared Name")

		_, err := svc.GetAccountByName(user2.ID, "Shared Name")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		newName := "Renamed"
		updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Name: &newName})
		testutil.AssertNoError(t, err)
		if updated.Name != "Renamed" {
			t.Errorf("expected Renamed, got %s", updated.Name)
		}
	})

	t.Run("billing_rejected_on_checking", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		_, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{
			Billing: &BillingSettings{BillGenerationDay: 1, BillDueDay: 21},
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("billing_updated_on_credit_card", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCreditCardAccount(t, db, user.ID)

		updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{
			Billing: &BillingSettings{BillGenerationDay: 5, BillDueDay: 25, MinimumPaymentRate: 0.1},
		})
		testutil.AssertNoError(t, err)
		if updated.BillGenerationDay != 5 || updated.BillDueDay != 25 {
			t.Errorf("expected billing days 5/25, got %d/%d", updated.BillGenerationDay, updated.BillDueDay)
		}
	})
}

func TestPostToBalance(t *testing.T) {
	t.Run("checking_directions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, user.ID, 10000)

		testutil.AssertNoError(t, svc.PostToBalance(db, account, models.TransactionTypeDeposit, 2500))
		if account.Balance != 12500 {
			t.Errorf("expected 12500 after deposit, got %d", account.Balance)
		}
		testutil.AssertNoError(t, svc.PostToBalance(db, account, models.TransactionTypeWithdrawal, 500))
		if account.Balance != 12000 {
			t.Errorf("expected 12000 after withdrawal, got %d", account.Balance)
		}
	})

	t.Run("credit_card_inverts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCreditCardAccount(t, db, user.ID)

		// A purchase increases the amount owed; a payment decreases it.
		testutil.AssertNoError(t, svc.PostToBalance(db, card, models.TransactionTypeWithdrawal, 4000))
		if card.Balance != 4000 {
			t.Errorf("expected owed 4000 after purchase, got %d", card.Balance)
		}
		testutil.AssertNoError(t, svc.PostToBalance(db, card, models.TransactionTypeDeposit, 1500))
		if card.Balance != 2500 {
			t.Errorf("expected owed 2500 after payment, got %d", card.Balance)
		}
	})

	t.Run("rejects_transfer_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		err := svc.PostToBalance(db, account, models.TransactionTypeTransfer, 100)
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})
}
