package product

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/pkg/numerator"
)

// LowStockThreshold is the quantity at or below which a product is
// reported as running low.
const LowStockThreshold types.Quantity = 10

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Product service.
func NewService(repo Repository, txm tx.Manager, num numerator.Generator) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService(repo, txm),
		repo:           repo,
		numerator:      num,
	}

	svc.Hooks().OnBeforeCreate(svc.prepareForCreate)
	svc.Hooks().OnBeforeUpdate(svc.checkSKUUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return s.checkSKUUnique(ctx, item)
}

func (s *Service) checkSKUUnique(ctx context.Context, item *Product) error {
	if item.SKU == nil || *item.SKU == "" {
		return nil
	}
	existing, err := s.repo.FindBySKU(ctx, *item.SKU)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != item.ID {
		return apperror.NewConflict("product with this sku already exists").
			WithDetail("sku", *item.SKU)
	}
	return nil
}

// FindBySKU retrieves a product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	if sku == "" {
		return nil, apperror.NewValidation("sku is required")
	}
	return s.repo.FindBySKU(ctx, sku)
}

// FindLowStock lists products at or below the low-stock threshold.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindLowStock(ctx, LowStockThreshold, filter)
}

// GetMany resolves a set of product IDs, failing on the first one that
// does not exist.
func (s *Service) GetMany(ctx context.Context, ids []id.ID) (map[id.ID]*Product, error) {
	result := make(map[id.ID]*Product, len(ids))
	for _, productID := range ids {
		if _, ok := result[productID]; ok {
			continue
		}
		p, err := s.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		result[productID] = p
	}
	return result, nil
}
