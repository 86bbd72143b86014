// Package document_repo provides PostgreSQL implementations for
// document repositories. Documents are immutable once committed, so
// there is no update or delete path here; the only header write after
// insert is SetTotal, which runs in the same transaction as the lines.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/infrastructure/storage/postgres"
)

// BaseDocumentRepo provides shared header/line persistence for
// document types. H is the header struct, L the line struct.
type BaseDocumentRepo[H any, L any] struct {
	txManager   *postgres.TxManager
	headerTable string
	lineTable   string

	// insertable columns only; read-time join columns (display names)
	// must not appear here
	headerCols []string
	lineCols   []string
}

// NewBaseDocumentRepo creates a new base document repository.
func NewBaseDocumentRepo[H any, L any](txManager *postgres.TxManager, headerTable, lineTable string, headerCols, lineCols []string) *BaseDocumentRepo[H, L] {
	return &BaseDocumentRepo[H, L]{
		txManager:   txManager,
		headerTable: headerTable,
		lineTable:   lineTable,
		headerCols:  headerCols,
		lineCols:    lineCols,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *BaseDocumentRepo[H, L]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the active transaction or the pool.
func (r *BaseDocumentRepo[H, L]) Querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts the document header.
func (r *BaseDocumentRepo[H, L]) Create(ctx context.Context, header H) error {
	data := postgres.StructToMap(header)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in document")
	}

	filteredData := make(map[string]any, len(r.headerCols))
	for _, col := range r.headerCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(r.headerTable).
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err = r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert %s: %w", r.headerTable, err))
	}
	return nil
}

// SaveLines inserts the table part as a single multi-row insert.
func (r *BaseDocumentRepo[H, L]) SaveLines(ctx context.Context, docID id.ID, lines []L) error {
	if len(lines) == 0 {
		return apperror.NewValidation("document has no lines")
	}

	q := r.Builder().Insert(r.lineTable).Columns(r.lineCols...)
	for _, line := range lines {
		data := postgres.StructToMap(line)
		data["document_id"] = docID
		values := make([]any, len(r.lineCols))
		for i, col := range r.lineCols {
			values[i] = data[col]
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}

	if _, err = r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert %s: %w", r.lineTable, err))
	}
	return nil
}

// SetTotal writes the computed total onto the header.
func (r *BaseDocumentRepo[H, L]) SetTotal(ctx context.Context, docID id.ID, total types.Money) error {
	sql, args, err := r.Builder().
		Update(r.headerTable).
		Set("total", total).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("set total: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.headerTable, docID.String())
	}
	return nil
}
