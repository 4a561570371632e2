package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction es un asiento del kardex: el registro inmutable de un evento de
// inventario. Una vez persistido nunca se edita ni se borra; las correcciones
// se hacen con asientos nuevos (cycle_count, adjustment), no reescribiendo.
//
// ID es un secuencial de la base (BIGSERIAL): monótono, nunca reutilizado.
// Sirve como desempate determinista al ordenar por CreatedAt.
type Transaction struct {
	ID             int64
	UserID         string
	ProductID      string
	QuantityChange int64  // con signo, nunca cero
	Type           string // ver internal/domain/ledger
	UnitPrice      decimal.Decimal // precio capturado al momento del asiento
	TotalValue     decimal.Decimal // UnitPrice * |QuantityChange|
	Notes          string
	CreatedAt      time.Time
}
