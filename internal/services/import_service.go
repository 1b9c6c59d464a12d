package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/importer"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// importService reconciles parsed CSV rows against existing accounts,
// categories, and payees, and creates transactions from them.
type importService struct {
	db                 *gorm.DB
	accountService     AccountServicer
	categoryService    CategoryServicer
	payeeService       PayeeServicer
	transactionService TransactionServicer
}

// NewImportService creates a new ImportServicer.
func NewImportService(
	db *gorm.DB,
	accountService AccountServicer,
	categoryService CategoryServicer,
	payeeService PayeeServicer,
	transactionService TransactionServicer,
) ImportServicer {
	return &importService{
		db:                 db,
		accountService:     accountService,
		categoryService:    categoryService,
		payeeService:       payeeService,
		transactionService: transactionService,
	}
}

// dupKey identifies a transaction for duplicate detection: calendar day,
// account, amount, and counterparty (payee for entries, destination account
// for transfers).
type dupKey struct {
	day          string
	accountID    string
	amount       int64
	counterparty string
}

// ImportBatch processes rows strictly one at a time. Sequential processing
// is a correctness requirement, not a performance choice: two rows naming
// the same not-yet-created category or payee must not race to create it.
// A failing row never aborts the batch; every row yields a result entry and
// onProgress fires after each one.
func (s *importService) ImportBatch(userID string, rows []importer.ParsedTransaction, opts ImportOptions, onProgress ProgressFunc) ([]ImportResult, error) {
	results := make([]ImportResult, 0, len(rows))
	seen := make(map[dupKey]bool)
	total := len(rows)

	for i, row := range rows {
		result := s.importRow(userID, row, opts, seen)
		results = append(results, result)
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}

	summary := Summarize(results)
	logger.Get().Infow("import batch finished",
		"user_id", userID,
		"total", summary.Total,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	return results, nil
}

// importRow reconciles and persists a single row. Collaborator errors are
// converted into a failure entry, never propagated.
func (s *importService) importRow(userID string, row importer.ParsedTransaction, opts ImportOptions, seen map[dupKey]bool) ImportResult {
	result := ImportResult{Row: row}

	if !row.Valid() {
		result.Error = fmt.Sprintf("row %d failed validation: %s", row.Row, row.Errors[0])
		return result
	}

	account, err := s.accountService.GetAccountByName(userID, row.AccountName)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if row.IsTransfer {
		return s.importTransfer(userID, row, account, opts, seen, result)
	}
	return s.importEntry(userID, row, account, opts, seen, result)
}

func (s *importService) importTransfer(userID string, row importer.ParsedTransaction, from *models.Account, opts ImportOptions, seen map[dupKey]bool, result ImportResult) ImportResult {
	to, err := s.accountService.GetAccountByName(userID, row.TransferToAccount)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	key := dupKey{day: row.Date.Format("2006-01-02"), accountID: from.ID, amount: row.Amount, counterparty: to.ID}
	if opts.SkipDuplicates {
		dup, err := s.isDuplicate(userID, key, seen)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		if dup {
			result.Skipped = true
			return result
		}
	}

	transaction, err := s.transactionService.CreateTransfer(userID, TransferInput{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        row.Amount,
		Date:          row.Date,
		Notes:         row.Notes,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	seen[key] = true
	result.Success = true
	result.Transaction = transaction
	return result
}

func (s *importService) importEntry(userID string, row importer.ParsedTransaction, account *models.Account, opts ImportOptions, seen map[dupKey]bool, result ImportResult) ImportResult {
	var categoryID *string
	if row.CategoryName != "" {
		category, created, err := s.resolveCategory(userID, row.CategoryName, opts.CreateMissingCategories)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		categoryID = &category.ID
		result.CreatedCategory = created
	}
	// Withdrawals require a category; the transaction service would reject
	// the row anyway, but failing here gives a clearer message.
	if row.Type == models.TransactionTypeWithdrawal && categoryID == nil {
		result.Error = fmt.Sprintf("row %d: withdrawals require a category", row.Row)
		return result
	}

	var payeeID *string
	counterparty := ""
	if row.PayeeName != "" {
		payee, created, err := s.resolvePayee(userID, row.PayeeName, row.CategoryName, opts.CreateMissingPayees)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		payeeID = &payee.ID
		result.CreatedPayee = created
		counterparty = payee.ID
	}

	key := dupKey{day: row.Date.Format("2006-01-02"), accountID: account.ID, amount: row.Amount, counterparty: counterparty}
	if opts.SkipDuplicates {
		dup, err := s.isDuplicate(userID, key, seen)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		if dup {
			result.Skipped = true
			return result
		}
	}

	transaction, err := s.transactionService.CreateEntry(userID, EntryInput{
		AccountID:  account.ID,
		Type:       row.Type,
		Amount:     row.Amount,
		Date:       row.Date,
		CategoryID: categoryID,
		PayeeID:    payeeID,
		Notes:      row.Notes,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	seen[key] = true
	result.Success = true
	result.Transaction = transaction
	return result
}

// resolveCategory finds a category by name, creating it when allowed.
func (s *importService) resolveCategory(userID, name string, createMissing bool) (*models.Category, bool, error) {
	category, err := s.categoryService.GetCategoryByName(userID, name)
	if err == nil {
		return category, false, nil
	}
	if !createMissing {
		return nil, false, err
	}
	category, err = s.categoryService.CreateCategory(userID, name, "")
	if err != nil {
		return nil, false, err
	}
	return category, true, nil
}

// resolvePayee finds a payee by name, creating it when allowed. The row's
// category name is stored as the new payee's category hint.
func (s *importService) resolvePayee(userID, name, categoryHint string, createMissing bool) (*models.Payee, bool, error) {
	payee, err := s.payeeService.GetPayeeByName(userID, name)
	if err == nil {
		return payee, false, nil
	}
	if !createMissing {
		return nil, false, err
	}
	payee, err = s.payeeService.CreatePayee(userID, name, categoryHint)
	if err != nil {
		return nil, false, err
	}
	return payee, true, nil
}

// isDuplicate checks the in-batch set first, then persisted transactions on
// the same day with the same account, amount, and counterparty.
func (s *importService) isDuplicate(userID string, key dupKey, seen map[dupKey]bool) (bool, error) {
	if seen[key] {
		return true, nil
	}

	dayStart, err := time.Parse("2006-01-02", key.day)
	if err != nil {
		return false, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	var existing []models.Transaction
	if err := s.db.
		Where("user_id = ? AND amount = ? AND date >= ? AND date < ?", userID, key.amount, dayStart, dayEnd).
		Where("account_id = ? OR from_account_id = ?", key.accountID, key.accountID).
		Find(&existing).Error; err != nil {
		return false, err
	}

	for _, t := range existing {
		switch {
		case t.IsTransfer():
			if t.ToAccountID != nil && *t.ToAccountID == key.counterparty {
				return true, nil
			}
		case key.counterparty == "":
			if t.PayeeID == nil {
				return true, nil
			}
		default:
			if t.PayeeID != nil && *t.PayeeID == key.counterparty {
				return true, nil
			}
		}
	}
	return false, nil
}

// Summarize aggregates per-row results into batch totals.
// Successful + Failed + Skipped always equals Total.
func Summarize(results []ImportResult) ImportSummary {
	summary := ImportSummary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			summary.Skipped++
		case r.Success:
			summary.Successful++
		default:
			summary.Failed++
		}
		if r.Success {
			switch r.Row.Type {
			case models.TransactionTypeDeposit:
				summary.Deposits++
			case models.TransactionTypeWithdrawal:
				summary.Withdrawals++
			case models.TransactionTypeTransfer:
				summary.Transfers++
			}
		}
		if r.CreatedCategory {
			summary.CreatedCategories++
		}
		if r.CreatedPayee {
			summary.CreatedPayees++
		}
	}
	return summary
}
