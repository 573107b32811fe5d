package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is one immutable ledger entry recording a purchase against an event.
// Sales are append-only; corrections happen by reconciling the event counter,
// never by editing the ledger.
type Sale struct {
	ID       int64     `json:"id" db:"id"`
	SaleID   uuid.UUID `json:"sale_id" db:"sale_id"`
	EventID  int64     `json:"event_id" db:"event_id"`
	Buyer    string    `json:"buyer" db:"buyer"`
	Contact  string    `json:"contact" db:"contact"`
	Quantity int       `json:"quantity" db:"quantity"`
	Total    float64   `json:"total" db:"total"`
	SoldAt   time.Time `json:"sold_at" db:"sold_at"`
}

// AttemptSaleRequest is a purchase request entering the coordinator.
type AttemptSaleRequest struct {
	EventID  int64  `json:"event_id" binding:"required"`
	Buyer    string `json:"buyer" binding:"required"`
	Contact  string `json:"contact"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// SaleResponse is returned to the purchaser on success.
type SaleResponse struct {
	ID           int64   `json:"id"`
	SaleID       string  `json:"sale_id"`
	EventID      int64   `json:"event_id"`
	Buyer        string  `json:"buyer"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
	SoldAt       string  `json:"sold_at"`
	Confirmation string  `json:"confirmation"`
}
