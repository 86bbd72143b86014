package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	cfg := CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},
		ApplyUpdate: func(req dto.UpdateProductRequest, existing *product.Product) {
			req.ApplyTo(existing)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// LowStock handles GET /catalog/products/low-stock.
func (h *ProductHandler) LowStock(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindLowStock(c.Request.Context(), filter)
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

// BySKU handles GET /catalog/products/by-sku/:sku.
func (h *ProductHandler) BySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.Error(c, apperror.NewValidation("sku is required"))
		return
	}

	item, err := h.service.FindBySKU(c.Request.Context(), sku)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, item)
}
