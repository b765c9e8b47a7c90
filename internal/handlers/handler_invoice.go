package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles the receivables workflow.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// RegisterInvoiceRoutes registers routes related to invoices.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/payments", h.recordPayment)
	}
}

// createInvoice godoc
// @Summary Issue an invoice
// @Description Stores the invoice, derives the due date from its payment terms and posts the receivables journal
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice with lines"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unrecognised payment terms"
// @Failure 409 {object} dto.ErrorResponse "Invoice number already used"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "invoiceID")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), userID, invoiceID)
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// recordPayment godoc
// @Summary Record a customer payment
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   payment body dto.RecordInvoicePaymentRequest true "Payment"
// @Success 201 {object} domain.InvoicePayment
// @Failure 400 {object} dto.ErrorResponse "Amount exceeds outstanding balance"
// @Failure 409 {object} dto.ErrorResponse "Invoice already paid"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "invoiceID")
	if !ok {
		return
	}
	var req dto.RecordInvoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	payment, err := h.invoiceService.RecordPayment(c.Request.Context(), userID, invoiceID, req)
	if err != nil {
		respondError(c, err, "Failed to record invoice payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}
