package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale document endpoints.
type SaleHandler struct {
	*BaseHandler
	service  *sale.Service
	products *product.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service, products *product.Service) *SaleHandler {
	return &SaleHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
	}
}

// Commit handles POST /documents/sales - commit a sale.
func (h *SaleHandler) Commit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CommitSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	customerID, err := id.Parse(req.CustomerID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customer id"))
		return
	}

	doc := sale.NewSale(customerID, userID)
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

// Get handles GET /documents/sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
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

// List handles GET /documents/sales with filtering.
func (h *SaleHandler) List(c *gin.Context) {
	filter := sale.ListFilter{
		From:   h.ParseTimeQuery(c, "from"),
		To:     h.ParseTimeQuery(c, "to"),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id"))
			return
		}
		filter.CustomerID = parsed
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
