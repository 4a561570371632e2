package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (solo admin).
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
}

// UpdateProductRequest entrada para actualizar un producto (solo admin).
// No permite tocar Quantity: la cantidad solo cambia vía kardex.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	MinStockLevel *int64           `json:"min_stock_level"`
	IsActive      *bool            `json:"is_active"`
}

// AdjustQuantityRequest body para el ajuste directo de cantidad (solo admin).
// Se registra como asiento type=adjustment en el kardex.
type AdjustQuantityRequest struct {
	QuantityChange int64  `json:"quantity_change"`
	Notes          string `json:"notes,omitempty"`
}

// AdjustQuantityResponse cantidad resultante tras el ajuste.
type AdjustQuantityResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductStatusResponse reporte de estado de stock de un producto.
type ProductStatusResponse struct {
	ProductID           string     `json:"product_id"`
	Name                string     `json:"name"`
	CurrentQuantity     int64      `json:"current_quantity"`
	MinStockLevel       int64      `json:"min_stock_level"`
	StockStatus         string     `json:"stock_status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	LastTransactionDate *time.Time `json:"last_transaction_date,omitempty"`
	IsActive            bool       `json:"is_active"`
}

// ProductListResponse lista de productos activos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
