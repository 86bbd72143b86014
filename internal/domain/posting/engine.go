// Package posting runs the commit flow shared by every document kind
// that affects stock. A document describes its lines and direction;
// the engine owns the transaction: persist, adjust balances line by
// line, then write the computed total back onto the header.
package posting

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/calc"
	"stockbook/internal/domain/ledger"
	"stockbook/pkg/logger"
)

// Line is one stock-affecting row of a document.
type Line struct {
	LineID    id.ID
	ProductID id.ID
	Quantity  types.Quantity
	UnitPrice types.Money
}

func (l Line) GetQuantity() types.Quantity { return l.Quantity }
func (l Line) GetUnitPrice() types.Money   { return l.UnitPrice }

// Subtotal returns the line amount at two decimal places.
func (l Line) Subtotal() types.Money {
	return calc.Subtotal(l.Quantity, l.UnitPrice)
}

// Doc is what a document kind hands to the engine to get committed.
//
// Persist must insert the header (with a zero total) and all lines.
// SetTotal must write the computed total onto the already-inserted
// header. Both run inside the engine's transaction.
type Doc struct {
	ID           id.ID
	RecorderType string
	Direction    entity.Direction
	Date         time.Time
	Lines        []Line

	Persist  func(ctx context.Context) error
	SetTotal func(ctx context.Context, total types.Money) error
}

// Ledger is the balance-adjusting dependency of the engine.
type Ledger interface {
	Apply(ctx context.Context, adj ledger.Adjustment) error
}

// Engine commits stock-affecting documents atomically.
type Engine struct {
	txm    tx.Manager
	ledger Ledger
}

func NewEngine(txm tx.Manager, ledger Ledger) *Engine {
	return &Engine{txm: txm, ledger: ledger}
}

// Post validates and commits a document. Balance adjustments are
// applied in line input order; the first line that cannot be satisfied
// aborts the whole transaction, so either every line lands or none do.
func (e *Engine) Post(ctx context.Context, doc Doc) (types.Money, error) {
	if id.IsNil(doc.ID) {
		return types.ZeroMoney(), apperror.NewValidation("document id is required")
	}
	if doc.Direction != entity.DirectionIncrease && doc.Direction != entity.DirectionDecrease {
		return types.ZeroMoney(), apperror.NewValidation("unknown document direction").
			WithDetail("direction", string(doc.Direction))
	}

	total, err := calc.Total(doc.Lines)
	if err != nil {
		return types.ZeroMoney(), err
	}

	err = e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := doc.Persist(ctx); err != nil {
			return err
		}
		for _, line := range doc.Lines {
			adj := ledger.Adjustment{
				LineID:       line.LineID,
				RecorderID:   doc.ID,
				RecorderType: doc.RecorderType,
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				Direction:    doc.Direction,
				Period:       doc.Date,
			}
			if err := e.ledger.Apply(ctx, adj); err != nil {
				return err
			}
		}
		return doc.SetTotal(ctx, total)
	})
	if err != nil {
		return types.ZeroMoney(), err
	}

	logger.Info(ctx, "document posted",
		"document_id", doc.ID.String(),
		"type", doc.RecorderType,
		"lines", len(doc.Lines),
		"total", total.String(),
	)
	return total, nil
}
