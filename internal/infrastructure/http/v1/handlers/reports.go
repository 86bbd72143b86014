package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/reports"
)

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	report, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// LowStock handles GET /reports/low-stock.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	report, err := h.service.GetLowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Turnover handles GET /reports/stock-turnover.
func (h *ReportsHandler) Turnover(c *gin.Context) {
	filter := reports.TurnoverFilter{
		FromDate: h.ParseTimeQuery(c, "from"),
		ToDate:   h.ParseTimeQuery(c, "to"),
		Limit:    h.ParseIntQuery(c, "limit", 100),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	for _, raw := range c.QueryArray("productId") {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id").WithDetail("productId", raw))
			return
		}
		filter.ProductIDs = append(filter.ProductIDs, parsed)
	}

	report, err := h.service.GetTurnover(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// DocumentTotals handles GET /reports/document-totals.
func (h *ReportsHandler) DocumentTotals(c *gin.Context) {
	filter := reports.DocumentTotalsFilter{
		FromDate: h.ParseTimeQuery(c, "from"),
		ToDate:   h.ParseTimeQuery(c, "to"),
	}

	report, err := h.service.GetDocumentTotals(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}
