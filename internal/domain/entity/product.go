package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de Quantity vs MinStockLevel.
const (
	StockStatusInStock    = "IN_STOCK"
	StockStatusLowStock   = "LOW_STOCK"
	StockStatusOutOfStock = "OUT_OF_STOCK"
)

// Product representa un producto del catálogo.
// Quantity solo se modifica a través del kardex (transacción atómica con su asiento);
// ningún otro camino puede tocarla. Puede quedar negativa únicamente por tipos
// correctivos exentos (return, damaged, expired) hasta que un cycle_count la concilie.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta vigente
	Quantity      int64
	MinStockLevel int64
	IsActive      bool // soft delete: false = inactivo, conserva sus asientos
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus clasifica el nivel de stock actual frente al mínimo configurado.
// Una cantidad negativa (alcanzable por tipos correctivos exentos) también es
// OUT_OF_STOCK: no hay nada que vender.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity <= 0:
		return StockStatusOutOfStock
	case p.Quantity <= p.MinStockLevel:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
