package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/repos"
	"github.com/edunexa/educenter-backend/internal/services"
	"github.com/edunexa/educenter-backend/internal/types"
)

type BillingHandler struct {
	billingService services.BillingService
}

func NewBillingHandler(billingService services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func (bh *BillingHandler) Create(c *gin.Context) {
	var invoice types.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := bh.billingService.CreateInvoice(c.Request.Context(), &invoice)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, created)
}

func (bh *BillingHandler) List(c *gin.Context) {
	page, limit := PageParams(c)
	filter := repos.InvoiceFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
	if pid := c.Query("parentId"); pid != "" {
		parentID, err := uuid.Parse(pid)
		if err != nil {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.ParentID = &parentID
	}
	invoices, total, err := bh.billingService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondPage(c, invoices, total, page, limit)
}

func (bh *BillingHandler) MarkPaid(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoiceId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := bh.billingService.MarkPaid(c.Request.Context(), invoiceID); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondMessage(c, "invoice marked paid")
}

func (bh *BillingHandler) Outstanding(c *gin.Context) {
	parentID, err := uuid.Parse(c.Param("parentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	cents, err := bh.billingService.OutstandingBalance(c.Request.Context(), parentID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondOK(c, gin.H{"parent_id": parentID, "outstanding_cents": cents})
}
