package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo. La cantidad NO se toca aquí:
// cualquier cambio de stock pasa por el caso de uso del kardex.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, txRepo: txRepo}
}

// Create crea un producto (solo admin). La cantidad inicial entra como parte
// de la creación; a partir de ahí solo cambia vía kardex.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actingRole string) (*dto.ProductResponse, error) {
	if actingRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price debe ser positivo", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: quantity y min_stock_level no pueden ser negativos", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Quantity:      in.Quantity,
		MinStockLevel: in.MinStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID (activos e inactivos).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListActive lista los productos activos.
func (uc *ProductUseCase) ListActive(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	products, err := uc.productRepo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Items = append(resp.Items, *toProductResponse(p))
	}
	return resp, nil
}

// Update actualiza campos del producto (solo admin). Quantity queda fuera.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, actingRole string) (*dto.ProductResponse, error) {
	if actingRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price debe ser positivo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, fmt.Errorf("%w: min_stock_level no puede ser negativo", domain.ErrInvalidInput)
		}
		product.MinStockLevel = *in.MinStockLevel
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SoftDelete marca el producto como inactivo (solo admin). Sus asientos del
// kardex se conservan íntegros.
func (uc *ProductUseCase) SoftDelete(ctx context.Context, id string, actingRole string) error {
	if actingRole != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.SoftDelete(ctx, id)
}

// Status reporte de stock del producto: clasificación frente al mínimo y fecha
// del último asiento (consulta indexada LIMIT 1, no carga el historial).
func (uc *ProductUseCase) Status(ctx context.Context, id string) (*dto.ProductStatusResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	last, err := uc.txRepo.LastDateByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductStatusResponse{
		ProductID:           product.ID,
		Name:                product.Name,
		CurrentQuantity:     product.Quantity,
		MinStockLevel:       product.MinStockLevel,
		StockStatus:         product.StockStatus(),
		LastTransactionDate: last,
		IsActive:            product.IsActive,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Quantity:      p.Quantity,
		MinStockLevel: p.MinStockLevel,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
