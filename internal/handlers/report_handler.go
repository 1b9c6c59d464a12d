package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/export"
	"fintrack/internal/importer"
	"fintrack/internal/models"
	"fintrack/internal/reports"
	"fintrack/internal/services"
)

// ReportHandler handles reporting and export requests. Reports load the
// user's transactions once and run the pure filter/aggregation pipeline
// over them in memory.
type ReportHandler struct {
	transactionService services.TransactionServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(transactionService services.TransactionServicer) *ReportHandler {
	return &ReportHandler{transactionService: transactionService}
}

// reportQuery binds report filter criteria from the query string. Multi-value
// dimensions repeat the parameter: account_ids=a&account_ids=b.
type reportQuery struct {
	Preset       string   `form:"preset"`
	StartDate    *string  `form:"start_date"`
	EndDate      *string  `form:"end_date"`
	AccountIDs   []string `form:"account_ids" binding:"omitempty,dive,uuid"`
	CategoryIDs  []string `form:"category_ids" binding:"omitempty,dive,uuid"`
	PayeeIDs     []string `form:"payee_ids" binding:"omitempty,dive,uuid"`
	Types        []string `form:"types" binding:"omitempty,dive,transaction_type"`
	Statuses     []string `form:"statuses" binding:"omitempty,dive,transaction_status"`
	MinAmount    *int64   `form:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount    *int64   `form:"max_amount" binding:"omitempty,gte=0"`
	AccountTypes []string `form:"account_types" binding:"omitempty,dive,account_type"`
	Search       string   `form:"search"`
	IncludeNotes bool     `form:"include_notes"`
}

func (q *reportQuery) toCriteria() (reports.Criteria, error) {
	c := reports.Criteria{
		Preset:       reports.DateRangePreset(q.Preset),
		AccountIDs:   q.AccountIDs,
		CategoryIDs:  q.CategoryIDs,
		PayeeIDs:     q.PayeeIDs,
		MinAmount:    q.MinAmount,
		MaxAmount:    q.MaxAmount,
		Search:       q.Search,
		IncludeNotes: q.IncludeNotes,
	}
	if q.Preset != "" {
		if _, _, ok := reports.ResolvePreset(c.Preset, time.Now()); !ok {
			return c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown preset: "+q.Preset)
		}
	}
	if q.StartDate != nil {
		start, err := parseRequestDate(q.StartDate)
		if err != nil {
			return c, err
		}
		c.StartDate = &start
	}
	if q.EndDate != nil {
		end, err := parseRequestDate(q.EndDate)
		if err != nil {
			return c, err
		}
		c.EndDate = &end
	}
	for _, t := range q.Types {
		c.Types = append(c.Types, models.TransactionType(t))
	}
	for _, s := range q.Statuses {
		c.Statuses = append(c.Statuses, models.TransactionStatus(s))
	}
	for _, at := range q.AccountTypes {
		c.AccountTypes = append(c.AccountTypes, models.AccountType(at))
	}
	return c, nil
}

// filtered loads the user's transactions and applies the bound criteria.
func (h *ReportHandler) filtered(c *gin.Context) ([]models.Transaction, bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}

	var query reportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return nil, false
	}

	criteria, err := query.toCriteria()
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}

	transactions, err := h.transactionService.ListForReporting(userID)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}

	return reports.Filter(transactions, criteria, time.Now()), true
}

// GetSummary handles the income/expense summary report
// @Summary     Get a summary report
// @Description Get income, expense, and net totals for the filtered transaction set
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       preset query string false "Date range preset"
// @Success     200 {object} reports.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	transactions, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": reports.Summarize(transactions)})
}

// GetCategoryBreakdown handles the category breakdown report
// @Summary     Get a category breakdown
// @Description Get spending per category with percentages, top categories first
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       preset query string false "Date range preset"
// @Param       top    query int    false "Number of categories before rolling up into Others (default 10)"
// @Success     200 {object} []reports.CategorySlice "Category slices"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryBreakdown(c *gin.Context) {
	var topQuery struct {
		Top int `form:"top,default=10" binding:"gte=0"`
	}
	if err := c.ShouldBindQuery(&topQuery); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": reports.CategoryBreakdown(transactions, topQuery.Top)})
}

// GetTimeSeries handles the time series report
// @Summary     Get a time series report
// @Description Get income and expense totals bucketed by calendar interval
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       preset   query string false "Date range preset"
// @Param       interval query string false "Bucket interval: daily, weekly, monthly, quarterly, yearly (default monthly)"
// @Success     200 {object} []reports.TimeBucket "Time buckets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/timeseries [get]
func (h *ReportHandler) GetTimeSeries(c *gin.Context) {
	interval := reports.Interval(c.DefaultQuery("interval", string(reports.IntervalMonthly)))
	switch interval {
	case reports.IntervalDaily, reports.IntervalWeekly, reports.IntervalMonthly,
		reports.IntervalQuarterly, reports.IntervalYearly:
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown interval: "+string(interval)))
		return
	}

	transactions, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": reports.TimeSeries(transactions, interval)})
}

// GetAccountPerformance handles the per-account flows report
// @Summary     Get account performance
// @Description Get income, expense, and net flows per account; transfers debit the source and credit the destination
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       preset query string false "Date range preset"
// @Success     200 {object} []reports.AccountPerformance "Per-account flows"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/accounts [get]
func (h *ReportHandler) GetAccountPerformance(c *gin.Context) {
	transactions, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": reports.AccountPerformances(transactions)})
}

// GetPayeeAnalysis handles the per-payee spending report
// @Summary     Get payee analysis
// @Description Get withdrawal totals and averages per payee
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       preset query string false "Date range preset"
// @Success     200 {object} []reports.PayeeStat "Per-payee spending"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/payees [get]
func (h *ReportHandler) GetPayeeAnalysis(c *gin.Context) {
	transactions, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"payees": reports.PayeeAnalysis(transactions)})
}

// ExportTransactions streams the filtered transaction set as CSV
// @Summary     Export transactions as CSV
// @Description Export the filtered transaction set as CSV, optionally grouped by category, account, or month
// @Tags        reports
// @Accept      json
// @Produce     text/csv
// @Security    BearerAuth
// @Param       preset   query string false "Date range preset"
// @Param       group_by query string false "Grouping: category, account, or month"
// @Success     200 {string} string "CSV data"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/export [get]
func (h *ReportHandler) ExportTransactions(c *gin.Context) {
	groupBy := c.Query("group_by")
	switch groupBy {
	case "", "category", "account", "month":
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown group_by: "+groupBy))
		return
	}

	transactions, ok := h.filtered(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)

	var err error
	if groupBy == "" {
		err = export.WriteTransactions(c.Writer, transactions)
	} else {
		err = export.WriteGrouped(c.Writer, groupTransactions(transactions, groupBy))
	}
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}

// groupTransactions partitions the set by the requested dimension, keeping
// groups in order of first appearance.
func groupTransactions(transactions []models.Transaction, groupBy string) []export.Group {
	var order []string
	byLabel := make(map[string]*export.Group)

	label := func(t *models.Transaction) string {
		switch groupBy {
		case "category":
			if t.Category != nil {
				return t.Category.Name
			}
			return "Uncategorized"
		case "account":
			if t.Account != nil {
				return t.Account.Name
			}
			if t.FromAccount != nil {
				return t.FromAccount.Name
			}
			return "Unknown"
		default: // month
			return importer.FormatDate(time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, t.Date.Location()))
		}
	}

	for _, t := range transactions {
		l := label(&t)
		g, okL := byLabel[l]
		if !okL {
			g = &export.Group{Label: l}
			byLabel[l] = g
			order = append(order, l)
		}
		g.Transactions = append(g.Transactions, t)
	}

	groups := make([]export.Group, 0, len(order))
	for _, l := range order {
		groups = append(groups, *byLabel[l])
	}
	return groups
}
