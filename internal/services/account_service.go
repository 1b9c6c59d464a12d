package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account for a user. Credit card accounts
// require billing settings; other types ignore them.
func (s *accountService) CreateAccount(
	userID, name string,
	accountType models.AccountType,
	currency string,
	initialBalance int64,
	billing *BillingSettings,
) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if currency == "" {
		currency = "USD"
	}

	account := &models.Account{
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		Currency:       currency,
		InitialBalance: initialBalance,
		Balance:        initialBalance,
		IsActive:       true,
	}

	if accountType == models.AccountTypeCreditCard {
		if billing == nil {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "credit card accounts require billing settings")
		}
		account.BillGenerationDay = billing.BillGenerationDay
		account.BillDueDay = billing.BillDueDay
		account.InterestRate = billing.InterestRate
		account.MinimumPaymentRate = billing.MinimumPaymentRate
		if problems := account.ValidateBillingSettings(); len(problems) > 0 {
			return nil, apperrors.WithFields(apperrors.ErrValidation, problems)
		}
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// GetUserAccounts retrieves a paginated list of active accounts for a user.
func (s *accountService) GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Account{}).Where("user_id = ? AND is_active = ?", userID, true)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID for a specific user
func (s *accountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// GetAccountByName resolves an account by case-insensitive exact name match.
// Used by the import reconciler, which works from textual account names.
func (s *accountService) GetAccountByName(userID, name string) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(strings.TrimSpace(name))).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAccountNotFound, "Account not found: "+name)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an existing account. Billing settings are only
// applied to credit card accounts and are validated as a whole.
func (s *accountService) UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if fields.Billing != nil {
		if !account.IsCreditCard() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "billing settings only apply to credit card accounts")
		}
		candidate := *account
		candidate.BillGenerationDay = fields.Billing.BillGenerationDay
		candidate.BillDueDay = fields.Billing.BillDueDay
		candidate.InterestRate = fields.Billing.InterestRate
		candidate.MinimumPaymentRate = fields.Billing.MinimumPaymentRate
		if problems := candidate.ValidateBillingSettings(); len(problems) > 0 {
			return nil, apperrors.WithFields(apperrors.ErrValidation, problems)
		}
		updates["bill_generation_day"] = fields.Billing.BillGenerationDay
		updates["bill_due_day"] = fields.Billing.BillDueDay
		updates["interest_rate"] = fields.Billing.InterestRate
		updates["minimum_payment_rate"] = fields.Billing.MinimumPaymentRate
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// DeactivateAccount marks an account inactive. Accounts are never hard
// deleted while transactions reference them.
func (s *accountService) DeactivateAccount(userID, accountID string) error {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}
	if err := s.db.Model(account).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// PostToBalance applies a completed posting to the account balance.
// Deposits add and withdrawals subtract, except on credit cards where the
// balance tracks the amount owed: withdrawals add and deposits (payments)
// subtract. Transfer legs are posted as a withdrawal on the source and a
// deposit on the destination.
func (s *accountService) PostToBalance(tx *gorm.DB, account *models.Account, transactionType models.TransactionType, amount int64) error {
	switch transactionType {
	case models.TransactionTypeDeposit:
		if account.IsCreditCard() {
			account.Balance -= amount
		} else {
			account.Balance += amount
		}
	case models.TransactionTypeWithdrawal:
		if account.IsCreditCard() {
			account.Balance += amount
		} else {
			account.Balance -= amount
		}
	default:
		return apperrors.ErrInvalidTransactionType
	}

	if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
