package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/importer"
	"fintrack/internal/services"
)

// ImportHandler handles CSV transaction imports.
type ImportHandler struct {
	importService services.ImportServicer
	auditService  services.AuditServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer, auditService services.AuditServicer) *ImportHandler {
	return &ImportHandler{importService: importService, auditService: auditService}
}

// ImportPreviewResponse represents the parsed rows of an uploaded file
// before anything is written.
type ImportPreviewResponse struct {
	Rows    []importer.ParsedTransaction `json:"rows"`
	Total   int                          `json:"total"`
	Valid   int                          `json:"valid"`
	Invalid int                          `json:"invalid"`
}

// ImportExecuteResponse represents the outcome of a batch import.
type ImportExecuteResponse struct {
	Results []services.ImportResult `json:"results"`
	Summary services.ImportSummary  `json:"summary"`
}

// maxImportSize caps uploads at 10 MB.
const maxImportSize = 10 << 20

func parseUpload(c *gin.Context) ([]importer.ParsedTransaction, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required")
	}
	if fileHeader.Size > maxImportSize {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "file exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	defer file.Close()

	rows, err := importer.ParseCSV(file)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return rows, nil
}

// PreviewImport parses an uploaded CSV without writing anything
// @Summary     Preview a CSV import
// @Description Parse an uploaded CSV file and return the rows with per-row validation errors
// @Tags        import
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "CSV file"
// @Success     200 {object} ImportPreviewResponse "Parsed rows"
// @Failure     400 {object} ErrorResponse "Invalid file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /import/preview [post]
func (h *ImportHandler) PreviewImport(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := parseUpload(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := ImportPreviewResponse{Rows: rows, Total: len(rows)}
	for _, row := range rows {
		if row.Valid() {
			resp.Valid++
		} else {
			resp.Invalid++
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ExecuteImport parses and imports an uploaded CSV
// @Summary     Execute a CSV import
// @Description Parse an uploaded CSV file and import its rows as transactions
// @Tags        import
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file                      formData file   true  "CSV file"
// @Param       create_missing_categories formData bool   false "Create categories that do not exist (default true)"
// @Param       create_missing_payees     formData bool   false "Create payees that do not exist (default true)"
// @Param       skip_duplicates           formData bool   false "Skip rows matching existing transactions"
// @Success     200 {object} ImportExecuteResponse "Per-row results and summary"
// @Failure     400 {object} ErrorResponse "Invalid file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /import [post]
func (h *ImportHandler) ExecuteImport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := parseUpload(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	opts := services.ImportOptions{
		CreateMissingCategories: c.DefaultPostForm("create_missing_categories", "true") == "true",
		CreateMissingPayees:     c.DefaultPostForm("create_missing_payees", "true") == "true",
		SkipDuplicates:          c.PostForm("skip_duplicates") == "true",
	}

	results, err := h.importService.ImportBatch(userID, rows, opts, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary := services.Summarize(results)

	h.auditService.Log(userID, "IMPORT_TRANSACTIONS", "import", "", c.ClientIP(),
		map[string]interface{}{"total": summary.Total, "successful": summary.Successful, "failed": summary.Failed})

	c.JSON(http.StatusOK, ImportExecuteResponse{Results: results, Summary: summary})
}
