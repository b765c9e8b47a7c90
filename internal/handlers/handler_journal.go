package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/smb_books/internal/apperrors"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/middleware"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// RegisterJournalRoutes registers routes related to manual journals.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.POST("/validate", h.validateJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
	}
}

// RegisterIngestRoutes registers the legacy import endpoint. The group must
// already carry the API key middleware.
func RegisterIngestRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)
	rg.POST("/journals", h.ingestJournal)
}

// createJournal godoc
// @Summary Post a manual journal
// @Description Validates and posts a general journal. Unbalanced journals are rejected.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal with lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.JournalErrorResponse "Journal failed validation"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to post journal"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to post journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// validateJournal godoc
// @Summary Validate journal lines
// @Description Runs the line and balance rules without posting anything
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.ValidateJournalRequest true "Lines to check"
// @Success 200 {object} dto.ValidateJournalResponse
// @Failure 400 {object} dto.JournalErrorResponse "A line failed validation"
// @Security BearerAuth
// @Router /journals/validate [post]
func (h *journalHandler) validateJournal(c *gin.Context) {
	if _, ok := ownerID(c); !ok {
		return
	}
	var req dto.ValidateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	totals, err := h.journalService.ValidateJournal(c.Request.Context(), dto.ToDomainLines(req.Lines))
	var je *apperrors.JournalError
	if err != nil && !(errors.As(err, &je) && je.Kind == apperrors.KindUnbalanced) {
		respondError(c, err, "Failed to validate journal")
		return
	}
	c.JSON(http.StatusOK, validateResponse(totals, err == nil))
}

func validateResponse(totals accounting.Totals, balanced bool) dto.ValidateJournalResponse {
	return dto.ValidateJournalResponse{
		Balanced:    balanced,
		TotalDebit:  totals.Debit.StringFixed(2),
		TotalCredit: totals.Credit.StringFixed(2),
		Difference:  totals.Difference().StringFixed(2),
	}
}

// getJournal godoc
// @Summary Get a journal by ID
// @Description Returns the journal header with its lines in line-number order
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	journalID, ok := uuidParam(c, "journalID")
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), userID, journalID)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Lists the caller's journals, newest first, using token pagination
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid token"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ingestJournal godoc
// @Summary Import a journal from the legacy system
// @Description Posts a journal on behalf of the configured ingestion owner. Unbalanced journals are plugged to the suspense account only when legacy auto-balance is enabled.
// @Tags ingest
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal with lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.JournalErrorResponse "Journal failed validation"
// @Failure 401 {object} dto.ErrorResponse "Invalid API key"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Security ApiKeyAuth
// @Router /ingest/journals [post]
func (h *journalHandler) ingestJournal(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	journal, err := h.journalService.IngestJournal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to import journal")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Legacy journal imported",
		slog.String("journal_id", journal.JournalID),
		slog.Int("line_count", len(req.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}
