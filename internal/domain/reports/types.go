// Package reports provides report generation services.
package reports

import (
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// --- Dashboard ---

// Dashboard is the at-a-glance summary of the system.
type Dashboard struct {
	ProductCount  int64 `json:"productCount"`
	SupplierCount int64 `json:"supplierCount"`
	CustomerCount int64 `json:"customerCount"`
	PurchaseCount int64 `json:"purchaseCount"`
	SaleCount     int64 `json:"saleCount"`

	TotalPurchased types.Money `json:"totalPurchased"`
	TotalSold      types.Money `json:"totalSold"`

	LowStockCount int64 `json:"lowStockCount"`
}

// --- Low Stock ---

// LowStockItem is a product at or below the low-stock threshold.
type LowStockItem struct {
	ProductID      id.ID          `json:"productId"`
	ProductName    string         `json:"productName"`
	SKU            string         `json:"sku,omitempty"`
	QuantityOnHand types.Quantity `json:"quantityOnHand"`
}

// LowStockReport lists products running low.
type LowStockReport struct {
	Threshold types.Quantity `json:"threshold"`
	Items     []LowStockItem `json:"items"`
	Count     int            `json:"count"`
}

// --- Stock Turnover ---

// TurnoverFilter defines the period and scope of a turnover report.
type TurnoverFilter struct {
	FromDate time.Time
	ToDate   time.Time

	ProductIDs []id.ID

	Limit  int
	Offset int
}

// TurnoverItem is one product's movement totals over the period.
type TurnoverItem struct {
	ProductID      id.ID          `json:"productId"`
	ProductName    string         `json:"productName"`
	SKU            string         `json:"sku,omitempty"`
	OpeningBalance types.Quantity `json:"openingBalance"`
	Received       types.Quantity `json:"received"`
	Issued         types.Quantity `json:"issued"`
	ClosingBalance types.Quantity `json:"closingBalance"`
}

// TurnoverReport is the full turnover report.
type TurnoverReport struct {
	FromDate   time.Time      `json:"fromDate"`
	ToDate     time.Time      `json:"toDate"`
	Items      []TurnoverItem `json:"items"`
	TotalItems int            `json:"totalItems"`
}

// --- Document Totals ---

// DocumentTotalsFilter defines the period of a document totals report.
type DocumentTotalsFilter struct {
	FromDate time.Time
	ToDate   time.Time
}

// DocumentTotals aggregates committed documents over a period.
type DocumentTotals struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	PurchaseCount int64       `json:"purchaseCount"`
	PurchaseTotal types.Money `json:"purchaseTotal"`
	SaleCount     int64       `json:"saleCount"`
	SaleTotal     types.Money `json:"saleTotal"`
}
