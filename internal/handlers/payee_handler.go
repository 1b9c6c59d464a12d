package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// PayeeHandler handles payee-related requests.
type PayeeHandler struct {
	payeeService services.PayeeServicer
}

// NewPayeeHandler creates a new PayeeHandler.
func NewPayeeHandler(payeeService services.PayeeServicer) *PayeeHandler {
	return &PayeeHandler{payeeService: payeeService}
}

// CreatePayeeRequest represents the request payload for creating a payee
type CreatePayeeRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	CategoryHint string `json:"category_hint" binding:"max=100"`
}

// UpdatePayeeRequest represents the request payload for updating a payee
type UpdatePayeeRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	CategoryHint *string `json:"category_hint" binding:"omitempty,max=100"`
}

// PayeeResponse represents a payee in the response
type PayeeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MachineName  string `json:"machine_name"`
	CategoryHint string `json:"category_hint"`
	IsActive     bool   `json:"is_active"`
}

// CreatePayee handles the creation of a new payee
// @Summary     Create a payee
// @Description Create a new payee for the authenticated user
// @Tags        payees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePayeeRequest true "Payee details"
// @Success     201 {object} PayeeResponse "Payee created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate payee name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payees [post]
func (h *PayeeHandler) CreatePayee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePayeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payee, err := h.payeeService.CreatePayee(userID, req.Name, req.CategoryHint)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payee": payee})
}

// GetUserPayees handles the retrieval of payees for a user
// @Summary     Get user payees
// @Description Get a paginated list of payees for the authenticated user
// @Tags        payees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Payee] "Paginated payees"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payees [get]
func (h *PayeeHandler) GetUserPayees(c *gin.Context) {
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

	result, err := h.payeeService.GetUserPayees(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPayee handles retrieval of a single payee
// @Summary     Get a payee
// @Description Get a single payee by ID
// @Tags        payees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payee ID"
// @Success     200 {object} PayeeResponse "Payee"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payees/{id} [get]
func (h *PayeeHandler) GetPayee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payeeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payee, err := h.payeeService.GetPayeeByID(userID, payeeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payee": payee})
}

// UpdatePayee handles updates to a payee
// @Summary     Update a payee
// @Description Update a payee's name or category hint
// @Tags        payees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Payee ID"
// @Param       request body UpdatePayeeRequest true "Fields to update"
// @Success     200 {object} PayeeResponse "Updated payee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payee not found"
// @Failure     409 {object} ErrorResponse "Duplicate payee name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payees/{id} [put]
func (h *PayeeHandler) UpdatePayee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payeeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePayeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payee, err := h.payeeService.UpdatePayee(userID, payeeID, req.Name, req.CategoryHint)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payee": payee})
}

// DeletePayee handles deletion of a payee
// @Summary     Delete a payee
// @Description Soft-delete a payee; historical transactions keep their reference
// @Tags        payees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payee ID"
// @Success     204 "Payee deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payees/{id} [delete]
func (h *PayeeHandler) DeletePayee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payeeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.payeeService.DeletePayee(userID, payeeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
