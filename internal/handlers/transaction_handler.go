package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateEntryRequest represents the request payload for a deposit or withdrawal.
// Amount is in minor currency units and must be positive; the type decides
// the direction.
type CreateEntryRequest struct {
	AccountID  string  `json:"account_id" binding:"required,uuid"`
	Type       string  `json:"type" binding:"required,oneof=deposit withdrawal"`
	Amount     int64   `json:"amount" binding:"required,gt=0"`
	Date       *string `json:"date"`
	Status     string  `json:"status" binding:"omitempty,transaction_status"`
	CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
	PayeeID    *string `json:"payee_id" binding:"omitempty,uuid"`
	Notes      string  `json:"notes" binding:"max=1000"`
}

// CreateTransferRequest represents the request payload for a transfer
// between two of the user's accounts.
type CreateTransferRequest struct {
	FromAccountID string  `json:"from_account_id" binding:"required,uuid"`
	ToAccountID   string  `json:"to_account_id" binding:"required,uuid"`
	Amount        int64   `json:"amount" binding:"required,gt=0"`
	Date          *string `json:"date"`
	Status        string  `json:"status" binding:"omitempty,transaction_status"`
	Notes         string  `json:"notes" binding:"max=1000"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Only status, category, and notes are mutable.
type UpdateTransactionRequest struct {
	Status     *string `json:"status" binding:"omitempty,transaction_status"`
	CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
	Notes      *string `json:"notes" binding:"omitempty,max=1000"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID     string                   `json:"id"`
	Type   models.TransactionType   `json:"type"`
	Status models.TransactionStatus `json:"status"`
	Amount int64                    `json:"amount"`
	Date   time.Time                `json:"date"`
	Notes  string                   `json:"notes"`
}

// parseRequestDate accepts RFC3339 or plain YYYY-MM-DD dates.
func parseRequestDate(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", *raw)
		if err != nil {
			return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format")
		}
	}
	return parsed, nil
}

// CreateEntry handles the creation of a deposit or withdrawal
// @Summary     Create a deposit or withdrawal
// @Description Record a deposit or withdrawal on one of the user's accounts
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account, category, or payee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseRequestDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateEntry(userID, services.EntryInput{
		AccountID:  req.AccountID,
		Type:       models.TransactionType(req.Type),
		Amount:     req.Amount,
		Date:       date,
		Status:     models.TransactionStatus(req.Status),
		CategoryID: req.CategoryID,
		PayeeID:    req.PayeeID,
		Notes:      req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateTransfer handles the creation of a transfer
// @Summary     Create a transfer
// @Description Move funds between two of the user's accounts
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransferRequest true "Transfer details"
// @Success     201 {object} TransactionResponse "Transfer created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/transfer [post]
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseRequestDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransfer(userID, services.TransferInput{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Date:          date,
		Status:        models.TransactionStatus(req.Status),
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSFER", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// transactionListQuery binds list filters from the query string.
type transactionListQuery struct {
	pagination.PageRequest
	FromDate   *string `form:"from_date"`
	ToDate     *string `form:"to_date"`
	Type       *string `form:"type" binding:"omitempty,transaction_type"`
	Status     *string `form:"status" binding:"omitempty,transaction_status"`
	AccountID  *string `form:"account_id" binding:"omitempty,uuid"`
	CategoryID *string `form:"category_id" binding:"omitempty,uuid"`
	PayeeID    *string `form:"payee_id" binding:"omitempty,uuid"`
	MinAmount  *int64  `form:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount  *int64  `form:"max_amount" binding:"omitempty,gte=0"`
}

func (q *transactionListQuery) toFilter() (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if q.FromDate != nil {
		from, err := parseRequestDate(q.FromDate)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &from
	}
	if q.ToDate != nil {
		to, err := parseRequestDate(q.ToDate)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &to
	}
	if q.Type != nil {
		t := models.TransactionType(*q.Type)
		filter.Type = &t
	}
	if q.Status != nil {
		s := models.TransactionStatus(*q.Status)
		filter.Status = &s
	}
	filter.AccountID = q.AccountID
	filter.CategoryID = q.CategoryID
	filter.PayeeID = q.PayeeID
	filter.MinAmount = q.MinAmount
	filter.MaxAmount = q.MaxAmount
	return filter, nil
}

// GetUserTransactions handles the retrieval of transactions for a user
// @Summary     Get user transactions
// @Description Get a filtered, paginated list of transactions for the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       from_date   query string false "Earliest date (inclusive)"
// @Param       to_date     query string false "Latest date (inclusive)"
// @Param       type        query string false "Transaction type"
// @Param       status      query string false "Transaction status"
// @Param       account_id  query string false "Account touched by the transaction"
// @Param       category_id query string false "Category ID"
// @Param       payee_id    query string false "Payee ID"
// @Param       min_amount  query int    false "Minimum amount in minor units"
// @Param       max_amount  query int    false "Maximum amount in minor units"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query transactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction handles retrieval of a single transaction
// @Summary     Get a transaction
// @Description Get a single transaction by ID with its account, category, and payee
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updates to a transaction
// @Summary     Update a transaction
// @Description Update a transaction's status, category, or notes; amounts and accounts are immutable
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.TransactionStatus
	if req.Status != nil {
		s := models.TransactionStatus(*req.Status)
		status = &s
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, services.TransactionUpdateFields{
		Status:     status,
		CategoryID: req.CategoryID,
		Notes:      req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deletion of a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction, reversing its balance effect if it was completed
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
