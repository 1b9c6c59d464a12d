package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a checking account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, userID, 0)
}

// CreateTestAccountWithBalance creates a checking account with the given
// balance (in cents).
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     models.AccountTypeChecking,
		Balance:  balance,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestNamedAccount creates a checking account with a specific name,
// for tests that resolve accounts by name.
func CreateTestNamedAccount(t *testing.T, db *gorm.DB, userID, name string) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     name,
		Type:     models.AccountTypeChecking,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCreditCardAccount creates a credit card account with billing
// settings: bills cut on the 1st, due on the 21st, 5% minimum payment.
func CreateTestCreditCardAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:             userID,
		Name:               fmt.Sprintf("Test Credit Card %d", nextID()),
		Type:               models.AccountTypeCreditCard,
		Currency:           "USD",
		IsActive:           true,
		BillGenerationDay:  1,
		BillDueDay:         21,
		InterestRate:       0.18,
		MinimumPaymentRate: 0.05,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test credit card account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, userID, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:      userID,
		Name:        name,
		MachineName: models.Slugify(name),
		IsActive:    true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestPayee creates a payee with a unique name.
func CreateTestPayee(t *testing.T, db *gorm.DB, userID string) *models.Payee {
	t.Helper()
	return CreateTestPayeeWithName(t, db, userID, fmt.Sprintf("Test Payee %d", nextID()))
}

// CreateTestPayeeWithName creates a payee with the given name.
func CreateTestPayeeWithName(t *testing.T, db *gorm.DB, userID, name string) *models.Payee {
	t.Helper()

	payee := &models.Payee{
		UserID:      userID,
		Name:        name,
		MachineName: models.Slugify(name),
		IsActive:    true,
	}
	if err := db.Create(payee).Error; err != nil {
		t.Fatalf("failed to create test payee: %v", err)
	}
	return payee
}

// CreateTestWithdrawal creates a completed withdrawal on the given account
// and category, dated as specified. The account balance is NOT adjusted;
// use the transaction service when balance effects matter.
func CreateTestWithdrawal(t *testing.T, db *gorm.DB, userID string, account *models.Account, category *models.Category, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		Type:       models.TransactionTypeWithdrawal,
		Status:     models.TransactionStatusCompleted,
		Amount:     amount,
		Date:       date,
		AccountID:  &account.ID,
		CategoryID: &category.ID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test withdrawal: %v", err)
	}
	return tx
}

// CreateTestDeposit creates a completed deposit on the given account.
func CreateTestDeposit(t *testing.T, db *gorm.DB, userID string, account *models.Account, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		Type:      models.TransactionTypeDeposit,
		Status:    models.TransactionStatusCompleted,
		Amount:    amount,
		Date:      date,
		AccountID: &account.ID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test deposit: %v", err)
	}
	return tx
}
