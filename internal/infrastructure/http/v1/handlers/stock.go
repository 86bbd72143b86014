package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/ledger"
)

// StockHandler handles stock movement journal endpoints.
type StockHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *ledger.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Movements handles GET /stock/movements - the movement journal,
// newest first.
func (h *StockHandler) Movements(c *gin.Context) {
	filter := ledger.MovementFilter{
		From:   h.ParseTimeQuery(c, "from"),
		To:     h.ParseTimeQuery(c, "to"),
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if productID := c.Query("productId"); productID != "" {
		parsed, err := id.Parse(productID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id"))
			return
		}
		filter.ProductID = parsed
	}

	if recorderID := c.Query("recorderId"); recorderID != "" {
		parsed, err := id.Parse(recorderID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid recorder id"))
			return
		}
		filter.RecorderID = parsed
	}

	movements, err := h.service.Movements(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": movements})
}
