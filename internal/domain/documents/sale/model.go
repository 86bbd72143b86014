// Package sale provides the Sale document: goods issued to a customer,
// decreasing stock on hand.
package sale

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
const DocumentType = "doc_sale"

// Sale is a committed stock issue. Immutable once committed: there is
// no update or delete path.
type Sale struct {
	entity.Document

	// CustomerID references the customer catalog
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// CreatedBy references the user who committed the document
	CreatedBy id.ID `db:"created_by" json:"createdBy"`

	// Total is the sum of line subtotals, written after the lines land
	Total types.Money `db:"total" json:"total"`

	// Display names, joined at read time (never stored on the document)
	CustomerName  string `db:"customer_name" json:"customerName,omitempty"`
	CreatedByName string `db:"created_by_name" json:"createdByName,omitempty"`

	// Table part: issued items
	Lines []Line `db:"-" json:"lines"`
}

// Line is one issued item. UnitPrice is snapshotted at commit time and
// never changes afterwards; ProductName is joined at read time.
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

// NewSale creates a new Sale document.
func NewSale(customerID, createdBy id.ID) *Sale {
	return &Sale{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		CreatedBy:  createdBy,
		Total:      types.ZeroMoney(),
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a line and fills its number and subtotal.
func (s *Sale) AddLine(productID id.ID, quantity types.Quantity, unitPrice types.Money) {
	s.Lines = append(s.Lines, Line{
		LineID:     id.New(),
		DocumentID: s.ID,
		LineNo:     len(s.Lines) + 1,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   calc.Subtotal(quantity, unitPrice),
	})
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
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
// input order. Insufficiency is reported for the first failing line in
// this order.
func (s *Sale) PostingLines() []posting.Line {
	lines := make([]posting.Line, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = posting.Line{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return lines
}
