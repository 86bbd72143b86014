package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles purchase document endpoints.
type PurchaseHandler struct {
	*BaseHandler
	service  *purchase.Service
	products *product.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service, products *product.Service) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
	}
}

// Commit handles POST /documents/purchases - commit a purchase.
func (h *PurchaseHandler) Commit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CommitPurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	supplierID, err := id.Parse(req.SupplierID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplier id"))
		return
	}

	doc := purchase.NewPurchase(supplierID, userID)
	if req.Number != "" {
		doc.Number = req.Number
	}
	if req.Date != nil {
		doc.Date = *req.Date
	}

	if err := resolveLines(ctx, h.products, req.Lines, doc.AddLine); err != nil {
		h.Error(c, err)
		return
	}

	committed, err := h.service.Commit(ctx, doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, committed)
}

// Get handles GET /documents/purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// List handles GET /documents/purchases with filtering.
func (h *PurchaseHandler) List(c *gin.Context) {
	filter := purchase.ListFilter{
		From:   h.ParseTimeQuery(c, "from"),
		To:     h.ParseTimeQuery(c, "to"),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if supplierID := c.Query("supplierId"); supplierID != "" {
		parsed, err := id.Parse(supplierID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplier id"))
			return
		}
		filter.SupplierID = parsed
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
