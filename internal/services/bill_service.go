package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// billService handles credit card bill generation and payment recording.
type billService struct {
	db *gorm.DB
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB) BillServicer {
	return &billService{db: db}
}

// clampDay returns a date in the given year/month at the requested day of
// month, pulled back to the month's last day when the month is shorter.
func clampDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// DefaultBillingPeriod computes the most recent full billing cycle for a
// generation day: the previous occurrence of that day of month through the
// day before the current occurrence.
func DefaultBillingPeriod(generationDay int, now time.Time) (start, end time.Time) {
	current := clampDay(now.Year(), now.Month(), generationDay, now.Location())
	if current.After(now) {
		current = clampDay(now.Year(), now.Month()-1, generationDay, now.Location())
	}
	start = clampDay(current.Year(), current.Month()-1, generationDay, current.Location())
	end = current.AddDate(0, 0, -1)
	return start, end
}

// dueDateFor computes the bill due date: the first occurrence of the due
// day strictly after the bill is cut. The bill is cut the day after the
// period ends, so a due day at or before the generation day rolls into the
// month after that.
func dueDateFor(periodEnd time.Time, generationDay, dueDay int) time.Time {
	cut := periodEnd.AddDate(0, 0, 1)
	year, month := cut.Year(), cut.Month()
	if dueDay <= generationDay {
		month++
	}
	return clampDay(year, month, dueDay, periodEnd.Location())
}

// GenerateBill produces a bill for a credit card account over a billing
// period. When the period bounds are omitted they default to the most
// recent full cycle derived from the account's generation day. The bill
// amount is the sum of completed withdrawals on the account within the
// period; a zero sum still produces a (warned) zero bill.
func (s *billService) GenerateBill(userID, accountID string, periodStart, periodEnd *time.Time) (*BillGenerationResult, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !account.IsCreditCard() {
		return nil, apperrors.ErrNotCreditCardAccount
	}

	now := time.Now()
	var start, end time.Time
	if periodStart != nil && periodEnd != nil {
		start, end = *periodStart, *periodEnd
		if !end.After(start) {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "period_end must be after period_start")
		}
	} else if periodStart == nil && periodEnd == nil {
		start, end = DefaultBillingPeriod(account.BillGenerationDay, now)
	} else {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "period_start and period_end must be provided together")
	}

	// One bill per (account, period). Exact duplicates are rejected;
	// partial overlaps are only warned about below.
	var dupCount int64
	if err := s.db.Model(&models.CreditCardBill{}).
		Where("account_id = ? AND period_start = ? AND period_end = ?", accountID, start, end).
		Count(&dupCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if dupCount > 0 {
		return nil, apperrors.ErrDuplicateBill
	}

	var warnings []string
	var overlapCount int64
	if err := s.db.Model(&models.CreditCardBill{}).
		Where("account_id = ? AND period_start <= ? AND period_end >= ?", accountID, end, start).
		Count(&overlapCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if overlapCount > 0 {
		warnings = append(warnings, fmt.Sprintf("billing period overlaps %d existing bill(s) for this account", overlapCount))
	}

	var billAmount int64
	if err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND account_id = ? AND type = ? AND status = ? AND date BETWEEN ? AND ?",
			userID, accountID, models.TransactionTypeWithdrawal, models.TransactionStatusCompleted, start, end).
		Scan(&billAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if billAmount == 0 {
		warnings = append(warnings, "zero-amount bill: no completed withdrawals in the billing period")
	}

	bill := &models.CreditCardBill{
		UserID:         userID,
		AccountID:      accountID,
		PeriodStart:    start,
		PeriodEnd:      end,
		GenerationDate: now,
		DueDate:        dueDateFor(end, account.BillGenerationDay, account.BillDueDay),
		BillAmount:     billAmount,
		IsPaid:         false,
		Status:         models.BillStatusGenerated,
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &BillGenerationResult{
		Bill:           bill,
		MinimumPayment: bill.MinimumPayment(account.MinimumPaymentRate),
		Warnings:       warnings,
	}, nil
}

// GetUserBills retrieves a paginated list of bills, optionally scoped to
// one account. Statuses are re-derived on read so an unpaid bill crossing
// its due date shows as overdue without a write.
func (s *billService) GetUserBills(userID string, page pagination.PageRequest, accountID *string) (*pagination.PageResponse[models.CreditCardBill], error) {
	page.Defaults()

	base := s.db.Model(&models.CreditCardBill{}).Where("user_id = ?", userID)
	if accountID != nil {
		base = base.Where("account_id = ?", *accountID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.CreditCardBill
	if err := base.Scopes(pagination.Paginate(page)).Order("period_end DESC").Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	for i := range bills {
		bills[i].Status = bills[i].DeriveStatus(now)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBillByID retrieves a bill by ID for a specific user with its status
// re-derived.
func (s *billService) GetBillByID(userID, billID string) (*models.CreditCardBill, error) {
	var bill models.CreditCardBill
	if err := s.db.Where("id = ? AND user_id = ?", billID, userID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	bill.Status = bill.DeriveStatus(time.Now())
	return &bill, nil
}

// RecordPayment marks a bill paid. The paid amount defaults to the full
// bill amount and the paid date to now; status derives to paid or partial
// from the amount comparison.
func (s *billService) RecordPayment(userID, billID string, paidAmount *int64, paidDate *time.Time) (*models.CreditCardBill, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	amount := bill.BillAmount
	if paidAmount != nil {
		if *paidAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "paid amount must be greater than zero")
		}
		amount = *paidAmount
	}
	date := time.Now()
	if paidDate != nil {
		date = *paidDate
	}

	bill.IsPaid = true
	bill.PaidAmount = &amount
	bill.PaidDate = &date
	bill.Status = bill.DeriveStatus(time.Now())

	if err := s.db.Model(bill).Updates(map[string]interface{}{
		"is_paid":     true,
		"paid_amount": amount,
		"paid_date":   date,
		"status":      bill.Status,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// MarkUnpaid clears the payment fields. The status derives back to overdue
// when the due date has passed, generated otherwise.
func (s *billService) MarkUnpaid(userID, billID string) (*models.CreditCardBill, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	bill.IsPaid = false
	bill.PaidAmount = nil
	bill.PaidDate = nil
	bill.Status = bill.DeriveStatus(time.Now())

	if err := s.db.Model(bill).Updates(map[string]interface{}{
		"is_paid":     false,
		"paid_amount": nil,
		"paid_date":   nil,
		"status":      bill.Status,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// DeleteBill soft-deletes a bill.
func (s *billService) DeleteBill(userID, billID string) error {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
