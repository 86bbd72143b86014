package customer

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Customer service.
func NewService(repo Repository, txm tx.Manager, num numerator.Generator) *Service {
	svc := &Service{
		CatalogService: domain.NewCatalogService(repo, txm),
		repo:           repo,
		numerator:      num,
	}
	svc.Hooks().OnBeforeCreate(svc.prepareForCreate)
	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Customer) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CUS"), time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}
