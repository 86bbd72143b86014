package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/infrastructure/storage/postgres"
)

const (
	saleTable     = "doc_sales"
	saleLineTable = "doc_sale_lines"
)

var (
	saleHeaderCols = []string{"id", "number", "date", "customer_id", "created_by", "total", "created_at"}
	saleLineCols   = []string{"line_id", "document_id", "line_no", "product_id", "quantity", "unit_price", "subtotal"}
)

var saleSelectCols = []string{
	"d.id", "d.number", "d.date", "d.customer_id", "d.created_by", "d.total", "d.created_at",
	"c.name AS customer_name",
	"u.name AS created_by_name",
}

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	*BaseDocumentRepo[*sale.Sale, sale.Line]
}

var _ sale.Repository = (*SaleRepo)(nil)

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*sale.Sale, sale.Line](
			txManager, saleTable, saleLineTable,
			saleHeaderCols, saleLineCols,
		),
	}
}

func (r *SaleRepo) enrichedSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(saleSelectCols...).
		From(saleTable + " d").
		Join("cat_customers c ON c.id = d.customer_id").
		Join("users u ON u.id = d.created_by")
}

// GetByID retrieves the header with display names joined in.
func (r *SaleRepo) GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	sql, args, err := r.enrichedSelect().
		Where(squirrel.Eq{"d.id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	doc := &sale.Sale{}
	if err := pgxscan.Get(ctx, r.Querier(ctx), doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", docID.String())
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get sale: %w", err))
	}
	return doc, nil
}

// GetLines retrieves the table part with product names joined in.
func (r *SaleRepo) GetLines(ctx context.Context, docID id.ID) ([]sale.Line, error) {
	sql, args, err := r.Builder().
		Select("l.line_id", "l.document_id", "l.line_no", "l.product_id",
			"l.quantity", "l.unit_price", "l.subtotal",
			"p.name AS product_name").
		From(saleLineTable + " l").
		Join("cat_products p ON p.id = l.product_id").
		Where(squirrel.Eq{"l.document_id": docID}).
		OrderBy("l.line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("get sale lines: %w", err))
	}
	return lines, nil
}

// List retrieves headers matching the filter, newest first.
func (r *SaleRepo) List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error) {
	result := domain.ListResult[*sale.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.enrichedSelect()
	if !id.IsNil(filter.CustomerID) {
		q = q.Where(squirrel.Eq{"d.customer_id": filter.CustomerID})
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
		return result, apperror.NewDatabase(fmt.Errorf("count sales: %w", err))
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
		return result, apperror.NewDatabase(fmt.Errorf("list sales: %w", err))
	}
	return result, nil
}
