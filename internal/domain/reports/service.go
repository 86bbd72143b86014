package reports

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/catalogs/product"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetDashboard returns the at-a-glance summary.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dashboard, err := s.repo.GetDashboard(ctx, product.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}
	return dashboard, nil
}

// GetLowStock lists products at or below the low-stock threshold.
func (s *Service) GetLowStock(ctx context.Context) (*LowStockReport, error) {
	items, err := s.repo.GetLowStock(ctx, product.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("get low stock: %w", err)
	}
	return &LowStockReport{
		Threshold: product.LowStockThreshold,
		Items:     items,
		Count:     len(items),
	}, nil
}

// GetTurnover generates the stock turnover report for a period.
func (s *Service) GetTurnover(ctx context.Context, filter TurnoverFilter) (*TurnoverReport, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	items, err := s.repo.GetTurnover(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get turnover: %w", err)
	}
	return &TurnoverReport{
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
		Items:      items,
		TotalItems: len(items),
	}, nil
}

// GetDocumentTotals aggregates committed documents over a period.
// Defaults to the last 30 days when no period is given.
func (s *Service) GetDocumentTotals(ctx context.Context, filter DocumentTotalsFilter) (*DocumentTotals, error) {
	if filter.ToDate.IsZero() {
		filter.ToDate = time.Now().UTC()
	}
	if filter.FromDate.IsZero() {
		filter.FromDate = filter.ToDate.AddDate(0, 0, -30)
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}

	totals, err := s.repo.GetDocumentTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get document totals: %w", err)
	}
	totals.FromDate = filter.FromDate
	totals.ToDate = filter.ToDate
	return totals, nil
}
