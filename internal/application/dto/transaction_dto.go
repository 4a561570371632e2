package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest body para POST /api/transactions.
// UnitPrice es opcional: si falta se captura el precio vigente del producto.
type CreateTransactionRequest struct {
	ProductID      string           `json:"product_id"`
	QuantityChange int64            `json:"quantity_change"`
	Type           string           `json:"type"`
	Notes          string           `json:"notes,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
}

// TransactionResponse asiento del kardex con proyecciones de presentación.
// ProductName y UserName se resuelven al leer, no se almacenan en el asiento.
type TransactionResponse struct {
	ID             int64           `json:"id"`
	UserID         string          `json:"user_id"`
	ProductID      string          `json:"product_id"`
	QuantityChange int64           `json:"quantity_change"`
	Type           string          `json:"type"`
	Notes          string          `json:"notes,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalValue     decimal.Decimal `json:"total_value"`
	CreatedAt      time.Time       `json:"created_at"`
	ProductName    string          `json:"product_name,omitempty"`
	UserName       string          `json:"user_name,omitempty"`
}

// TransactionListRequest filtros + paginación para GET /api/transactions.
type TransactionListRequest struct {
	PageRequest
	UserID    string `query:"user_id"`
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	StartDate string `query:"start_date"` // RFC 3339 o YYYY-MM-DD
	EndDate   string `query:"end_date"`
}

// TransactionListResponse lista paginada de asientos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// RecentTransactionDTO asiento resumido dentro del summary.
type RecentTransactionDTO struct {
	ID             int64     `json:"id"`
	Type           string    `json:"type"`
	QuantityChange int64     `json:"quantity_change"`
	ProductName    string    `json:"product_name,omitempty"`
	UserName       string    `json:"user_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionSummaryResponse agregados globales del kardex. TotalValue suma
// el valor de todos los asientos, incluidos los de tipos neutros.
type TransactionSummaryResponse struct {
	TotalTransactions  int64                  `json:"total_transactions"`
	TotalValue         decimal.Decimal        `json:"total_value"`
	RecentTransactions []RecentTransactionDTO `json:"recent_transactions"`
}
