package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/infrastructure/storage/postgres"
)

const (
	purchaseTable     = "doc_purchases"
	purchaseLineTable = "doc_purchase_lines"
)

var (
	purchaseHeaderCols = []string{"id", "number", "date", "supplier_id", "created_by", "total", "created_at"}
	purchaseLineCols   = []string{"line_id", "document_id", "line_no", "product_id", "quantity", "unit_price", "subtotal"}
)

// purchaseSelectCols are the read-side columns: header plus display
// names joined from the supplier and user tables.
var purchaseSelectCols = []string{
	"d.id", "d.number", "d.date", "d.supplier_id", "d.created_by", "d.total", "d.created_at",
	"s.name AS supplier_name",
	"u.name AS created_by_name",
}

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase, purchase.Line]
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*purchase.Purchase, purchase.Line](
			txManager, purchaseTable, purchaseLineTable,
			purchaseHeaderCols, purchaseLineCols,
		),
	}
}

func (r *PurchaseRepo) enrichedSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(purchaseSelectCols...).
		From(purchaseTable + " d").
		Join("cat_suppliers s ON s.id = d.supplier_id").
		Join("users u ON u.id = d.created_by")
}

// GetByID retrieves the header with display names joined in.
func (r *PurchaseRepo) GetByID(ctx context.Context, docID id.ID) (*purchase.Purchase, error) {
	sql, args, err := r.enrichedSelect().
		Where(squirrel.Eq{"d.id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	doc := &purchase.Purchase{}
	if err := pgxscan.Get(ctx, r.Querier(ctx), doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", docID.String())
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get purchase: %w", err))
	}
	return doc, nil
}

// GetLines retrieves the table part with product names joined in.
func (r *PurchaseRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	sql, args, err := r.Builder().
		Select("l.line_id", "l.document_id", "l.line_no", "l.product_id",
			"l.quantity", "l.unit_price", "l.subtotal",
			"p.name AS product_name").
		From(purchaseLineTable + " l").
		Join("cat_products p ON p.id = l.product_id").
		Where(squirrel.Eq{"l.document_id": docID}).
		OrderBy("l.line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("get purchase lines: %w", err))
	}
	return lines, nil
}

// List retrieves headers matching the filter, newest first.
func (r *PurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.Purchase], error) {
	result := domain.ListResult[*purchase.Purchase]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.enrichedSelect()
	if !id.IsNil(filter.SupplierID) {
		q = q.Where(squirrel.Eq{"d.supplier_id": filter.SupplierID})
	}
	if !filter.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"d.date": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(squirrel.LtOrEq{"d.date": filter.To})
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("count purchases: %w", err))
	}

	q = q.OrderBy("d.date DESC", "d.number DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.Querier(ctx), &result.Items, sql, args...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("list purchases: %w", err))
	}
	return result, nil
}
