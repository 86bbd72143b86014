package supplier

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/numerator"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txm tx.Manager, num numerator.Generator) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService(repo, txm),
		repo:           repo,
		numerator:      num,
	}
	svc.Hooks().OnBeforeCreate(svc.prepareForCreate)
	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Supplier) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SUP"), time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}
