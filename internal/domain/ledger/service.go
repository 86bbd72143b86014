// Package ledger maintains per-product on-hand balances and the
// append-only movement journal behind them.
package ledger

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/pkg/logger"
)

// Adjustment describes a single balance change requested by a document line.
type Adjustment struct {
	LineID     id.ID
	RecorderID id.ID
	// RecorderType names the document kind that caused the adjustment
	RecorderType string
	ProductID    id.ID
	Quantity     types.Quantity
	Direction    entity.Direction
	Period       time.Time
}

// Service applies adjustments to product balances.
//
// Apply must run inside a transaction: the balance row stays locked
// from the read to the write, which is what keeps two concurrent
// decreases from both passing the sufficiency check.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Apply adjusts one product's balance and records the journal entry.
// Decreases that would take the balance below zero are rejected with
// an insufficient-stock error carrying the available and requested
// quantities.
func (s *Service) Apply(ctx context.Context, adj Adjustment) error {
	if adj.Quantity <= 0 {
		return apperror.NewValidation("adjustment quantity must be positive").
			WithDetail("productId", adj.ProductID.String())
	}

	onHand, err := s.repo.GetOnHandForUpdate(ctx, adj.ProductID)
	if err != nil {
		return err
	}

	var next types.Quantity
	switch adj.Direction {
	case entity.DirectionIncrease:
		next = onHand + adj.Quantity
	case entity.DirectionDecrease:
		if onHand < adj.Quantity {
			return apperror.NewInsufficientStock(adj.ProductID.String(), adj.Quantity, onHand)
		}
		next = onHand - adj.Quantity
	default:
		return apperror.NewValidation("unknown adjustment direction").
			WithDetail("direction", string(adj.Direction))
	}

	if err := s.repo.SetOnHand(ctx, adj.ProductID, next); err != nil {
		return err
	}

	movement := entity.NewStockMovement(adj.RecorderID, adj.RecorderType, adj.Direction, adj.ProductID, adj.Quantity, adj.Period)
	movement.LineID = adj.LineID
	if err := s.repo.RecordMovement(ctx, movement); err != nil {
		return err
	}

	logger.Debug(ctx, "stock adjusted",
		"product_id", adj.ProductID.String(),
		"direction", adj.Direction,
		"quantity", adj.Quantity,
		"on_hand", next,
	)
	return nil
}

// Movements returns journal entries matching the filter, newest first.
func (s *Service) Movements(ctx context.Context, filter MovementFilter) ([]MovementRow, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}
	return s.repo.ListMovements(ctx, filter)
}
