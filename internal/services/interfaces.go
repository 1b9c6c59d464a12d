package services

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/importer"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// BillingSettings carries credit card billing configuration.
// Rates are decimal fractions in [0,1].
type BillingSettings struct {
	BillGenerationDay  int
	BillDueDay         int
	InterestRate       float64
	MinimumPaymentRate float64
}

// AccountUpdateFields holds optional fields for updating an account.
// Nil pointers leave the current value untouched.
type AccountUpdateFields struct {
	Name     *string
	IsActive *bool
	Billing  *BillingSettings
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType models.AccountType, currency string, initialBalance int64, billing *BillingSettings) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	GetAccountByName(userID, name string) (*models.Account, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeactivateAccount(userID, accountID string) error
	PostToBalance(tx *gorm.DB, account *models.Account, transactionType models.TransactionType, amount int64) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name, description string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	GetCategoryByName(userID, name string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, name, description *string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// PayeeServicer defines the contract for payee-related business logic.
type PayeeServicer interface {
	CreatePayee(userID, name, categoryHint string) (*models.Payee, error)
	GetUserPayees(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Payee], error)
	GetPayeeByID(userID, payeeID string) (*models.Payee, error)
	GetPayeeByName(userID, name string) (*models.Payee, error)
	UpdatePayee(userID, payeeID string, name, categoryHint *string) (*models.Payee, error)
	DeletePayee(userID, payeeID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	Status     *models.TransactionStatus
	AccountID  *string
	CategoryID *string
	PayeeID    *string
	MinAmount  *int64
	MaxAmount  *int64
}

// EntryInput holds the fields for creating a deposit or withdrawal.
type EntryInput struct {
	AccountID  string
	Type       models.TransactionType
	Amount     int64
	Date       time.Time
	Status     models.TransactionStatus
	CategoryID *string
	PayeeID    *string
	Notes      string
}

// TransferInput holds the fields for creating a transfer between accounts.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Date          time.Time
	Status        models.TransactionStatus
	Notes         string
}

// TransactionUpdateFields holds the mutable transaction fields: status,
// category, and notes. Everything else is immutable after creation.
type TransactionUpdateFields struct {
	Status     *models.TransactionStatus
	CategoryID *string
	Notes      *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateEntry(userID string, in EntryInput) (*models.Transaction, error)
	CreateTransfer(userID string, in TransferInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	ListForReporting(userID string) ([]models.Transaction, error)
}

// BudgetProgress contains spending vs budget data for a budget's month.
type BudgetProgress struct {
	BudgetID   string  `json:"budget_id"`
	Budgeted   int64   `json:"budgeted"`
	Spent      int64   `json:"spent"`
	Remaining  int64   `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID string, month time.Time, amount int64) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, month *time.Time) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, amount int64) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetProgress(userID, budgetID string) (*BudgetProgress, error)
}

// BillGenerationResult is the outcome of generating a credit card bill.
// MinimumPayment is derived from the account's minimum payment rate and is
// never persisted. Warnings flag conditions such as a zero-amount bill or a
// period overlapping an existing bill.
type BillGenerationResult struct {
	Bill           *models.CreditCardBill `json:"bill"`
	MinimumPayment int64                  `json:"minimum_payment"`
	Warnings       []string               `json:"warnings,omitempty"`
}

// BillServicer defines the contract for credit card bill business logic.
type BillServicer interface {
	GenerateBill(userID, accountID string, periodStart, periodEnd *time.Time) (*BillGenerationResult, error)
	GetUserBills(userID string, page pagination.PageRequest, accountID *string) (*pagination.PageResponse[models.CreditCardBill], error)
	GetBillByID(userID, billID string) (*models.CreditCardBill, error)
	RecordPayment(userID, billID string, paidAmount *int64, paidDate *time.Time) (*models.CreditCardBill, error)
	MarkUnpaid(userID, billID string) (*models.CreditCardBill, error)
	DeleteBill(userID, billID string) error
}

// ImportOptions controls reconciliation behavior during a batch import.
type ImportOptions struct {
	CreateMissingCategories bool `json:"create_missing_categories"`
	CreateMissingPayees     bool `json:"create_missing_payees"`
	SkipDuplicates          bool `json:"skip_duplicates"`
}

// ImportResult is the per-row outcome of a batch import.
type ImportResult struct {
	Success         bool                       `json:"success"`
	Skipped         bool                       `json:"skipped"`
	Row             importer.ParsedTransaction `json:"row"`
	Transaction     *models.Transaction        `json:"transaction,omitempty"`
	CreatedCategory bool                       `json:"created_category,omitempty"`
	CreatedPayee    bool                       `json:"created_payee,omitempty"`
	Error           string                     `json:"error,omitempty"`
}

// ImportSummary aggregates a batch of import results.
type ImportSummary struct {
	Total             int `json:"total"`
	Successful        int `json:"successful"`
	Failed            int `json:"failed"`
	Skipped           int `json:"skipped"`
	Deposits          int `json:"deposits"`
	Withdrawals       int `json:"withdrawals"`
	Transfers         int `json:"transfers"`
	CreatedCategories int `json:"created_categories"`
	CreatedPayees     int `json:"created_payees"`
}

// ProgressFunc reports incremental batch progress after each row.
type ProgressFunc func(done, total int)

// ImportServicer defines the contract for batch transaction imports.
type ImportServicer interface {
	ImportBatch(userID string, rows []importer.ParsedTransaction, opts ImportOptions, onProgress ProgressFunc) ([]ImportResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
