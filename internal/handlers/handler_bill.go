package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/gin-gonic/gin"
)

// billHandler handles the payables workflow: bills, their payments and
// refunds, and vendor credits.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(billService portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: billService}
}

// RegisterBillRoutes registers routes related to bills and bill credits.
func RegisterBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("/:billID", h.getBill)
		bills.POST("/:billID/approve", h.approveBill)
		bills.POST("/:billID/payments", h.recordPayment)
		bills.POST("/:billID/refunds", h.recordRefund)
	}

	credits := rg.Group("/bill-credits")
	{
		credits.POST("", h.createBillCredit)
		credits.GET("/:creditID", h.getBillCredit)
	}
}

// createBill godoc
// @Summary Create a draft bill
// @Description Stores a vendor bill in Draft. Nothing is posted until it is approved.
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateBillRequest true "Bill with lines"
// @Success 201 {object} domain.Bill
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Bill number already used"
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// getBill godoc
// @Summary Get a bill
// @Tags bills
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Success 200 {object} domain.Bill
// @Failure 404 {object} dto.ErrorResponse "Bill not found"
// @Security BearerAuth
// @Router /bills/{billID} [get]
func (h *billHandler) getBill(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	billID, ok := uuidParam(c, "billID")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), userID, billID)
	if err != nil {
		respondError(c, err, "Failed to retrieve bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// approveBill godoc
// @Summary Approve a draft bill
// @Description Moves the bill to Open and posts its payables journal
// @Tags bills
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Success 200 {object} domain.Bill
// @Failure 400 {object} dto.JournalErrorResponse "Bill journal failed validation"
// @Failure 404 {object} dto.ErrorResponse "Bill not found"
// @Failure 409 {object} dto.ErrorResponse "Bill is not a draft"
// @Security BearerAuth
// @Router /bills/{billID}/approve [post]
func (h *billHandler) approveBill(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	billID, ok := uuidParam(c, "billID")
	if !ok {
		return
	}

	bill, err := h.billService.ApproveBill(c.Request.Context(), userID, billID)
	if err != nil {
		respondError(c, err, "Failed to approve bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// recordPayment godoc
// @Summary Pay a bill
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Param   payment body dto.RecordBillPaymentRequest true "Payment"
// @Success 201 {object} domain.BillPayment
// @Failure 400 {object} dto.ErrorResponse "Amount exceeds open balance"
// @Failure 409 {object} dto.ErrorResponse "Bill is not open"
// @Security BearerAuth
// @Router /bills/{billID}/payments [post]
func (h *billHandler) recordPayment(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	billID, ok := uuidParam(c, "billID")
	if !ok {
		return
	}
	var req dto.RecordBillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	payment, err := h.billService.RecordPayment(c.Request.Context(), userID, billID, req)
	if err != nil {
		respondError(c, err, "Failed to record bill payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// recordRefund godoc
// @Summary Record a vendor refund
// @Description Books money returned against a bill, optionally spread over the original expense lines
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Param   refund body dto.RecordBillRefundRequest true "Refund"
// @Success 201 {object} domain.BillRefund
// @Failure 400 {object} dto.ErrorResponse "Amount exceeds refundable amount"
// @Failure 409 {object} dto.ErrorResponse "Bill is still a draft"
// @Security BearerAuth
// @Router /bills/{billID}/refunds [post]
func (h *billHandler) recordRefund(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	billID, ok := uuidParam(c, "billID")
	if !ok {
		return
	}
	var req dto.RecordBillRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	refund, err := h.billService.RecordRefund(c.Request.Context(), userID, billID, req)
	if err != nil {
		respondError(c, err, "Failed to record bill refund")
		return
	}
	c.JSON(http.StatusCreated, refund)
}

// createBillCredit godoc
// @Summary Record a vendor credit
// @Description Stores the credit and posts it against payables immediately
// @Tags bill-credits
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreateBillCreditRequest true "Credit with lines"
// @Success 201 {object} domain.BillCredit
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /bill-credits [post]
func (h *billHandler) createBillCredit(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreateBillCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	credit, err := h.billService.CreateBillCredit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create bill credit")
		return
	}
	c.JSON(http.StatusCreated, credit)
}

// getBillCredit godoc
// @Summary Get a vendor credit
// @Tags bill-credits
// @Produce  json
// @Param   creditID path string true "Credit ID"
// @Success 200 {object} domain.BillCredit
// @Failure 404 {object} dto.ErrorResponse "Credit not found"
// @Security BearerAuth
// @Router /bill-credits/{creditID} [get]
func (h *billHandler) getBillCredit(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	creditID, ok := uuidParam(c, "creditID")
	if !ok {
		return
	}

	credit, err := h.billService.GetBillCredit(c.Request.Context(), userID, creditID)
	if err != nil {
		respondError(c, err, "Failed to retrieve bill credit")
		return
	}
	c.JSON(http.StatusOK, credit)
}
