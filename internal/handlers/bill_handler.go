package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/uuid"
)

// BillHandler handles credit card bill requests.
type BillHandler struct {
	billService  services.BillServicer
	auditService services.AuditServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService services.BillServicer, auditService services.AuditServicer) *BillHandler {
	return &BillHandler{billService: billService, auditService: auditService}
}

// GenerateBillRequest represents the request payload for generating a bill.
// When period_start and period_end are omitted the billing period is derived
// from the account's bill generation day.
type GenerateBillRequest struct {
	AccountID   string  `json:"account_id" binding:"required,uuid"`
	PeriodStart *string `json:"period_start"`
	PeriodEnd   *string `json:"period_end"`
}

// RecordPaymentRequest represents the request payload for recording a bill
// payment. Omitting paid_amount records payment in full; omitting paid_date
// uses the current time.
type RecordPaymentRequest struct {
	PaidAmount *int64  `json:"paid_amount" binding:"omitempty,gt=0"`
	PaidDate   *string `json:"paid_date"`
}

// BillResponse represents a bill in the response
type BillResponse struct {
	ID          string            `json:"id"`
	AccountID   string            `json:"account_id"`
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	DueDate     time.Time         `json:"due_date"`
	BillAmount  int64             `json:"bill_amount"`
	IsPaid      bool              `json:"is_paid"`
	Status      models.BillStatus `json:"status"`
}

// GenerateBill handles bill generation for a credit card account
// @Summary     Generate a credit card bill
// @Description Generate a bill for a credit card account over a billing period
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GenerateBillRequest true "Bill generation details"
// @Success     201 {object} services.BillGenerationResult "Generated bill with minimum payment and warnings"
// @Failure     400 {object} ErrorResponse "Invalid input or not a credit card account"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Bill already exists for the period"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/generate [post]
func (h *BillHandler) GenerateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var periodStart, periodEnd *time.Time
	if req.PeriodStart != nil {
		start, err := parseRequestDate(req.PeriodStart)
		if err != nil {
			respondWithError(c, err)
			return
		}
		periodStart = &start
	}
	if req.PeriodEnd != nil {
		end, err := parseRequestDate(req.PeriodEnd)
		if err != nil {
			respondWithError(c, err)
			return
		}
		periodEnd = &end
	}

	result, err := h.billService.GenerateBill(userID, req.AccountID, periodStart, periodEnd)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "GENERATE_BILL", "bill", result.Bill.ID, c.ClientIP(),
		map[string]interface{}{"account_id": req.AccountID, "bill_amount": result.Bill.BillAmount})

	c.JSON(http.StatusCreated, result)
}

// GetUserBills handles the retrieval of bills for a user
// @Summary     Get user bills
// @Description Get a paginated list of credit card bills, optionally for one account
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       account_id query string false "Credit card account ID"
// @Success     200 {object} pagination.PageResponse[models.CreditCardBill] "Paginated bills"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [get]
func (h *BillHandler) GetUserBills(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var accountID *string
	if raw := c.Query("account_id"); raw != "" {
		if !uuid.IsValid(raw) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid account_id"))
			return
		}
		accountID = &raw
	}

	result, err := h.billService.GetUserBills(userID, page, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBill handles retrieval of a single bill
// @Summary     Get a bill
// @Description Get a single credit card bill by ID with its current status
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} BillResponse "Bill"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetBillByID(userID, billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// RecordPayment handles recording a payment against a bill
// @Summary     Record a bill payment
// @Description Record a full or partial payment against a credit card bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Bill ID"
// @Param       request body RecordPaymentRequest true "Payment details"
// @Success     200 {object} BillResponse "Updated bill"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/pay [post]
func (h *BillHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var paidDate *time.Time
	if req.PaidDate != nil {
		parsed, err := parseRequestDate(req.PaidDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		paidDate = &parsed
	}

	bill, err := h.billService.RecordPayment(userID, billID, req.PaidAmount, paidDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PAY_BILL", "bill", bill.ID, c.ClientIP(),
		map[string]interface{}{"paid_amount": bill.PaidAmount})

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// MarkUnpaid handles reverting a bill's payment
// @Summary     Mark a bill unpaid
// @Description Clear a bill's payment record, reverting it to generated or overdue
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} BillResponse "Updated bill"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/unpay [post]
func (h *BillHandler) MarkUnpaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.MarkUnpaid(userID, billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UNPAY_BILL", "bill", bill.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deletion of a bill
// @Summary     Delete a bill
// @Description Delete a credit card bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     204 "Bill deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(userID, billID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BILL", "bill", billID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
