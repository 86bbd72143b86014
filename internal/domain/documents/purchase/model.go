// Package purchase provides the Purchase document: goods received from
// a supplier, increasing stock on hand.
package purchase

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/calc"
	"stockbook/internal/domain/posting"
)

// DocumentType is the recorder type recorded in the movement journal.
const DocumentType = "doc_purchase"

// Purchase is a committed stock receipt. Immutable once committed:
// there is no update or delete path.
type Purchase struct {
	entity.Document

	// SupplierID references the supplier catalog
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// CreatedBy references the user who committed the document
	CreatedBy id.ID `db:"created_by" json:"createdBy"`

	// Total is the sum of line subtotals, written after the lines land
	Total types.Money `db:"total" json:"total"`

	// Display names, joined at read time (never stored on the document)
	SupplierName  string `db:"supplier_name" json:"supplierName,omitempty"`
	CreatedByName string `db:"created_by_name" json:"createdByName,omitempty"`

	// Table part: received items
	Lines []Line `db:"-" json:"lines"`
}

// Line is one received item. UnitPrice is snapshotted at commit time
// and never changes afterwards; ProductName is joined at read time.
type Line struct {
	LineID     id.ID `db:"line_id" json:"lineId"`
	DocumentID id.ID `db:"document_id" json:"-"`
	LineNo     int   `db:"line_no" json:"lineNo"`

	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	Subtotal  types.Money    `db:"subtotal" json:"subtotal"`

	ProductName string `db:"product_name" json:"productName,omitempty"`
}

func (l Line) GetQuantity() types.Quantity { return l.Quantity }
func (l Line) GetUnitPrice() types.Money   { return l.UnitPrice }

// NewPurchase creates a new Purchase document.
func NewPurchase(supplierID, createdBy id.ID) *Purchase {
	return &Purchase{
		Document:   entity.NewDocument(),
		SupplierID: supplierID,
		CreatedBy:  createdBy,
		Total:      types.ZeroMoney(),
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a line and fills its number and subtotal.
func (p *Purchase) AddLine(productID id.ID, quantity types.Quantity, unitPrice types.Money) {
	p.Lines = append(p.Lines, Line{
		LineID:     id.New(),
		DocumentID: p.ID,
		LineNo:     len(p.Lines) + 1,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   calc.Subtotal(quantity, unitPrice),
	})
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range p.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if err := calc.ValidateLine(i, line); err != nil {
			return err
		}
	}

	return nil
}

// PostingLines converts table-part lines to engine lines, preserving
// input order.
func (p *Purchase) PostingLines() []posting.Line {
	lines := make([]posting.Line, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = posting.Line{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return lines
}
