package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID de un producto inexistente retorna (nil, nil).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; serializa los asientos
	// concurrentes sobre el mismo producto sin bloquear otros productos.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity fija la cantidad del producto. Lo invoca únicamente el
	// caso de uso del kardex dentro de la misma transacción que crea el asiento.
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// SoftDelete marca el producto como inactivo; sus asientos se conservan.
	SoftDelete(ctx context.Context, id string) error
}
