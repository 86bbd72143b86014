// Package register_repo provides PostgreSQL persistence for the stock
// ledger: product balances and the movement journal.
package register_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/infrastructure/storage/postgres"
)

const movementTable = "stock_movements"

// StockRepo implements ledger.Repository against the product balance
// column and the movement journal table.
type StockRepo struct {
	txManager *postgres.TxManager
}

var _ ledger.Repository = (*StockRepo)(nil)

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{txManager: txManager}
}

func (r *StockRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetOnHandForUpdate reads the balance and locks the product row until
// the enclosing transaction ends. Callers must be inside a transaction
// or the lock is released immediately.
func (r *StockRepo) GetOnHandForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error) {
	sql := `
		SELECT quantity_on_hand FROM cat_products
		WHERE id = $1 AND deletion_mark = false
		FOR UPDATE
	`

	var qty types.Quantity
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, productID).Scan(&qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	if err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("lock balance: %w", err))
	}
	return qty, nil
}

// SetOnHand writes the balance. The row must already be locked.
func (r *StockRepo) SetOnHand(ctx context.Context, productID id.ID, quantity types.Quantity) error {
	sql := `UPDATE cat_products SET quantity_on_hand = $2, updated_at = now() WHERE id = $1`

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, productID, quantity)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("set balance: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

// RecordMovement appends a journal entry.
func (r *StockRepo) RecordMovement(ctx context.Context, movement *entity.StockMovement) error {
	data := postgres.StructToMap(movement)

	sql, args, err := r.builder().
		Insert(movementTable).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert movement: %w", err))
	}
	return nil
}

// ListMovements returns journal entries, newest first.
func (r *StockRepo) ListMovements(ctx context.Context, filter ledger.MovementFilter) ([]ledger.MovementRow, error) {
	q := r.builder().
		Select("m.line_id", "m.recorder_id", "m.recorder_type", "m.direction",
			"m.product_id", "m.quantity", "m.period", "m.created_at",
			"p.name AS product_name").
		From(movementTable + " m").
		Join("cat_products p ON p.id = m.product_id")

	if !id.IsNil(filter.ProductID) {
		q = q.Where(squirrel.Eq{"m.product_id": filter.ProductID})
	}
	if !id.IsNil(filter.RecorderID) {
		q = q.Where(squirrel.Eq{"m.recorder_id": filter.RecorderID})
	}
	if !filter.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"m.period": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(squirrel.LtOrEq{"m.period": filter.To})
	}

	q = q.OrderBy("m.period DESC", "m.created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []ledger.MovementRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list movements: %w", err))
	}
	return rows, nil
}
