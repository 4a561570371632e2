package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// TransactionFilter criterios opcionales para listar asientos del kardex.
// Campos vacíos / nil no filtran.
type TransactionFilter struct {
	UserID    string
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
}

// TransactionWithNames asiento más las proyecciones de solo lectura para
// presentación (nombre del producto y del usuario); no son campos almacenados
// del asiento.
type TransactionWithNames struct {
	entity.Transaction
	ProductName string
	UserName    string
}

// TransactionSummary agregados globales del kardex.
type TransactionSummary struct {
	TotalTransactions int64
	TotalValue        decimal.Decimal
	Recent            []*TransactionWithNames // los 5 más recientes
}

// TransactionRepository define el puerto de persistencia para los asientos.
// Es append-only: no existe Update ni Delete; la conciliación se hace con
// asientos nuevos.
type TransactionRepository interface {
	// Create persiste un asiento nuevo y completa ID y CreatedAt asignados por
	// la base (secuencial monótono, nunca reutilizado).
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*TransactionWithNames, error)
	// List retorna la página pedida ordenada por created_at DESC con desempate
	// id DESC (más nuevo primero, determinista) y el total sin paginar.
	List(ctx context.Context, filter TransactionFilter, limit, offset int) ([]*TransactionWithNames, int64, error)
	Summary(ctx context.Context) (*TransactionSummary, error)
	// LastDateByProduct fecha del asiento más reciente de un producto
	// (consulta indexada con LIMIT 1, no carga la colección completa).
	// Sin asientos retorna (nil, nil).
	LastDateByProduct(ctx context.Context, productID string) (*time.Time, error)
}
