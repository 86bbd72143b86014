package dto

import (
	"time"
)

// CommitSaleRequest commits a sale document: goods shipped to a
// customer, decreasing stock.
type CommitSaleRequest struct {
	CustomerID string                `json:"customerId" binding:"required,uuid"`
	Number     string                `json:"number"`
	Date       *time.Time            `json:"date"`
	Lines      []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}
