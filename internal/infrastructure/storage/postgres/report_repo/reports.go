// Package report_repo provides the PostgreSQL read-side for reports.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetDashboard aggregates entity counts and document totals in one
// round-trip.
func (r *ReportRepo) GetDashboard(ctx context.Context, lowStockThreshold types.Quantity) (*reports.Dashboard, error) {
	sql := `
		SELECT
			(SELECT COUNT(*) FROM cat_products WHERE deletion_mark = false)  AS product_count,
			(SELECT COUNT(*) FROM cat_suppliers WHERE deletion_mark = false) AS supplier_count,
			(SELECT COUNT(*) FROM cat_customers WHERE deletion_mark = false) AS customer_count,
			(SELECT COUNT(*) FROM doc_purchases)                             AS purchase_count,
			(SELECT COUNT(*) FROM doc_sales)                                 AS sale_count,
			(SELECT COALESCE(SUM(total), 0) FROM doc_purchases)              AS total_purchased,
			(SELECT COALESCE(SUM(total), 0) FROM doc_sales)                  AS total_sold,
			(SELECT COUNT(*) FROM cat_products
			  WHERE deletion_mark = false AND quantity_on_hand <= $1)        AS low_stock_count
	`

	dashboard := &reports.Dashboard{}
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, lowStockThreshold).Scan(
		&dashboard.ProductCount,
		&dashboard.SupplierCount,
		&dashboard.CustomerCount,
		&dashboard.PurchaseCount,
		&dashboard.SaleCount,
		&dashboard.TotalPurchased,
		&dashboard.TotalSold,
		&dashboard.LowStockCount,
	)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("dashboard: %w", err))
	}
	return dashboard, nil
}

// GetLowStock lists products at or below the threshold, lowest first.
func (r *ReportRepo) GetLowStock(ctx context.Context, threshold types.Quantity) ([]reports.LowStockItem, error) {
	sql := `
		SELECT id AS product_id, name AS product_name,
		       COALESCE(sku, '') AS sku, quantity_on_hand
		FROM cat_products
		WHERE deletion_mark = false AND quantity_on_hand <= $1
		ORDER BY quantity_on_hand ASC, name ASC
	`

	var items []reports.LowStockItem
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, threshold); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("low stock: %w", err))
	}
	return items, nil
}

// GetTurnover computes per-product opening balance, receipts, issues
// and closing balance over the period from the movement journal.
func (r *ReportRepo) GetTurnover(ctx context.Context, filter reports.TurnoverFilter) ([]reports.TurnoverItem, error) {
	sql := `
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			COALESCE(p.sku, '') AS sku,
			COALESCE(SUM(CASE WHEN m.period < $1 THEN
				CASE m.direction WHEN 'increase' THEN m.quantity ELSE -m.quantity END
			ELSE 0 END), 0) AS opening_balance,
			COALESCE(SUM(CASE WHEN m.period >= $1 AND m.direction = 'increase'
				THEN m.quantity ELSE 0 END), 0) AS received,
			COALESCE(SUM(CASE WHEN m.period >= $1 AND m.direction = 'decrease'
				THEN m.quantity ELSE 0 END), 0) AS issued
		FROM cat_products p
		LEFT JOIN stock_movements m ON m.product_id = p.id AND m.period <= $2
		WHERE p.deletion_mark = false
		  AND (cardinality($3::uuid[]) = 0 OR p.id = ANY($3))
		GROUP BY p.id, p.name, p.sku
		ORDER BY p.name ASC
		LIMIT $4 OFFSET $5
	`

	productIDs := make([]string, len(filter.ProductIDs))
	for i, pid := range filter.ProductIDs {
		productIDs[i] = pid.String()
	}

	var rows []reports.TurnoverItem
	err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql,
		filter.FromDate, filter.ToDate, productIDs, filter.Limit, filter.Offset)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("turnover: %w", err))
	}

	for i := range rows {
		rows[i].ClosingBalance = rows[i].OpeningBalance + rows[i].Received - rows[i].Issued
	}
	return rows, nil
}

// GetDocumentTotals aggregates committed documents over a period.
func (r *ReportRepo) GetDocumentTotals(ctx context.Context, filter reports.DocumentTotalsFilter) (*reports.DocumentTotals, error) {
	sql := `
		SELECT
			(SELECT COUNT(*) FROM doc_purchases WHERE date >= $1 AND date <= $2)              AS purchase_count,
			(SELECT COALESCE(SUM(total), 0) FROM doc_purchases WHERE date >= $1 AND date <= $2) AS purchase_total,
			(SELECT COUNT(*) FROM doc_sales WHERE date >= $1 AND date <= $2)                  AS sale_count,
			(SELECT COALESCE(SUM(total), 0) FROM doc_sales WHERE date >= $1 AND date <= $2)     AS sale_total
	`

	totals := &reports.DocumentTotals{}
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, filter.FromDate, filter.ToDate).Scan(
		&totals.PurchaseCount,
		&totals.PurchaseTotal,
		&totals.SaleCount,
		&totals.SaleTotal,
	)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("document totals: %w", err))
	}
	return totals, nil
}
