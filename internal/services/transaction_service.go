package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// CreateEntry creates a deposit or withdrawal on an account. Withdrawals
// require a category. Only completed transactions post to the balance.
func (s *transactionService) CreateEntry(userID string, in EntryInput) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Type != models.TransactionTypeDeposit && in.Type != models.TransactionTypeWithdrawal {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if in.Type == models.TransactionTypeWithdrawal && in.CategoryID == nil {
		return nil, apperrors.ErrCategoryRequired
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if in.Status == "" {
		in.Status = models.TransactionStatusCompleted
	}

	account, err := s.accountService.GetAccountByID(userID, in.AccountID)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ? AND user_id = ?", *in.CategoryID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}
	if in.PayeeID != nil {
		var count int64
		if err := s.db.Model(&models.Payee{}).Where("id = ? AND user_id = ?", *in.PayeeID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrPayeeNotFound
		}
	}

	transaction := &models.Transaction{
		UserID:     userID,
		Type:       in.Type,
		Status:     in.Status,
		Amount:     in.Amount,
		Date:       in.Date,
		Notes:      in.Notes,
		AccountID:  &account.ID,
		CategoryID: in.CategoryID,
		PayeeID:    in.PayeeID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.Status == models.TransactionStatusCompleted {
			return s.accountService.PostToBalance(tx, account, in.Type, in.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// CreateTransfer creates a transfer between two of the user's accounts.
// The row carries only from/to account references, never a category or
// payee.
func (s *transactionService) CreateTransfer(userID string, in TransferInput) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.FromAccountID == in.ToAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if in.Status == "" {
		in.Status = models.TransactionStatusCompleted
	}

	fromAccount, err := s.accountService.GetAccountByID(userID, in.FromAccountID)
	if err != nil {
		return nil, err
	}
	toAccount, err := s.accountService.GetAccountByID(userID, in.ToAccountID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:        userID,
		Type:          models.TransactionTypeTransfer,
		Status:        in.Status,
		Amount:        in.Amount,
		Date:          in.Date,
		Notes:         in.Notes,
		FromAccountID: &fromAccount.ID,
		ToAccountID:   &toAccount.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.Status != models.TransactionStatusCompleted {
			return nil
		}
		if err := s.accountService.PostToBalance(tx, fromAccount, models.TransactionTypeWithdrawal, in.Amount); err != nil {
			return err
		}
		return s.accountService.PostToBalance(tx, toAccount, models.TransactionTypeDeposit, in.Amount)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Account").Preload("FromAccount").Preload("ToAccount").
		Preload("Category").Preload("Payee").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ? OR from_account_id = ? OR to_account_id = ?", *f.AccountID, *f.AccountID, *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.PayeeID != nil {
		q = q.Where("payee_id = ?", *f.PayeeID)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).
		Preload("Account").Preload("FromAccount").Preload("ToAccount").
		Preload("Category").Preload("Payee").
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies the mutable fields: status, category, notes.
// Moving into or out of completed posts or reverses the balance effect.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.CategoryID != nil {
		if transaction.IsTransfer() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfers do not carry a category")
		}
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ? AND user_id = ?", *fields.CategoryID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
		updates["category_id"] = *fields.CategoryID
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}

	wasCompleted := transaction.Status == models.TransactionStatusCompleted
	nowCompleted := wasCompleted
	if fields.Status != nil {
		nowCompleted = *fields.Status == models.TransactionStatusCompleted
		updates["status"] = *fields.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(transaction).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		switch {
		case wasCompleted && !nowCompleted:
			return s.postEffect(tx, userID, transaction, true)
		case !wasCompleted && nowCompleted:
			return s.postEffect(tx, userID, transaction, false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction deletes a transaction and reverses its balance effect
// when it had posted.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.Status == models.TransactionStatusCompleted {
			return s.postEffect(tx, userID, transaction, true)
		}
		return nil
	})
}

// postEffect applies (or reverses) a transaction's effect on account
// balances inside an open database transaction.
func (s *transactionService) postEffect(tx *gorm.DB, userID string, t *models.Transaction, reverse bool) error {
	flip := func(ty models.TransactionType) models.TransactionType {
		if !reverse {
			return ty
		}
		if ty == models.TransactionTypeDeposit {
			return models.TransactionTypeWithdrawal
		}
		return models.TransactionTypeDeposit
	}

	if t.IsTransfer() {
		from, err := s.accountService.GetAccountByID(userID, *t.FromAccountID)
		if err != nil {
			return err
		}
		to, err := s.accountService.GetAccountByID(userID, *t.ToAccountID)
		if err != nil {
			return err
		}
		if err := s.accountService.PostToBalance(tx, from, flip(models.TransactionTypeWithdrawal), t.Amount); err != nil {
			return err
		}
		return s.accountService.PostToBalance(tx, to, flip(models.TransactionTypeDeposit), t.Amount)
	}

	account, err := s.accountService.GetAccountByID(userID, *t.AccountID)
	if err != nil {
		return err
	}
	return s.accountService.PostToBalance(tx, account, flip(t.Type), t.Amount)
}

// ListForReporting loads every transaction for the user with all references
// preloaded, oldest first. Reports and exports filter in memory from here.
func (s *transactionService) ListForReporting(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Preload("Account").Preload("FromAccount").Preload("ToAccount").
		Preload("Category").Preload("Payee").
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
