package dto

import (
	"time"

	"stockbook/internal/core/types"
)

// DocumentLineRequest is one line of a commit request. UnitPrice may
// be omitted, in which case the product's catalog price is snapshotted.
type DocumentLineRequest struct {
	ProductID string         `json:"productId" binding:"required,uuid"`
	Quantity  types.Quantity `json:"quantity" binding:"required,gt=0"`
	UnitPrice *types.Money   `json:"unitPrice"`
}

// CommitPurchaseRequest commits a purchase document: goods received
// from a supplier, increasing stock.
type CommitPurchaseRequest struct {
	SupplierID string                `json:"supplierId" binding:"required,uuid"`
	Number     string                `json:"number"`
	Date       *time.Time            `json:"date"`
	Lines      []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}
