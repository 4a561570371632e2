package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	domledger "github.com/jhoicas/Kardex-api/internal/domain/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// QueryUseCase lado de lectura del kardex: listados paginados con filtros y
// agregados. Solo lecturas, sin bloqueos, cancelable en cualquier punto.
type QueryUseCase struct {
	txRepo repository.TransactionRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(txRepo repository.TransactionRepository) *QueryUseCase {
	return &QueryUseCase{txRepo: txRepo}
}

// List retorna la página pedida de asientos (más nuevo primero, desempate por
// id descendente) y el total sin paginar. Una página fuera de rango devuelve
// items vacío con el total correcto, no es error.
func (uc *QueryUseCase) List(ctx context.Context, req dto.TransactionListRequest) (*dto.TransactionListResponse, error) {
	req.DefaultPage()
	if !req.Valid() {
		return nil, fmt.Errorf("%w: page debe ser >= 1 y page_size entre 1 y %d", domain.ErrInvalidInput, dto.MaxPageSize)
	}
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	items, total, err := uc.txRepo.List(ctx, filter, req.PageSize, req.Offset())
	if err != nil {
		return nil, err
	}

	resp := &dto.TransactionListResponse{
		Items: make([]dto.TransactionResponse, 0, len(items)),
		Page: dto.PageResponse{
			Page:     req.Page,
			PageSize: req.PageSize,
			Total:    total,
		},
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toTransactionResponse(it))
	}
	return resp, nil
}

// ListByUser asientos de un usuario (conveniencia sobre List).
func (uc *QueryUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	return uc.List(ctx, dto.TransactionListRequest{PageRequest: page, UserID: userID})
}

// ListByProduct asientos de un producto (conveniencia sobre List).
func (uc *QueryUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	return uc.List(ctx, dto.TransactionListRequest{PageRequest: page, ProductID: productID})
}

// GetByID obtiene un asiento por su ID.
func (uc *QueryUseCase) GetByID(ctx context.Context, id int64) (*dto.TransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	resp := toTransactionResponse(tx)
	return &resp, nil
}

// Summary agregados globales: número de asientos, valor total y los 5 más
// recientes. El valor total incluye asientos de tipos neutros.
func (uc *QueryUseCase) Summary(ctx context.Context) (*dto.TransactionSummaryResponse, error) {
	sum, err := uc.txRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.TransactionSummaryResponse{
		TotalTransactions:  sum.TotalTransactions,
		TotalValue:         sum.TotalValue,
		RecentTransactions: make([]dto.RecentTransactionDTO, 0, len(sum.Recent)),
	}
	for _, t := range sum.Recent {
		resp.RecentTransactions = append(resp.RecentTransactions, dto.RecentTransactionDTO{
			ID:             t.ID,
			Type:           t.Type,
			QuantityChange: t.QuantityChange,
			ProductName:    t.ProductName,
			UserName:       t.UserName,
			CreatedAt:      t.CreatedAt,
		})
	}
	return resp, nil
}

// buildFilter valida tipo y fechas del request y arma el filtro del repositorio.
// Si hay fecha inicial sin final, el rango se cierra en "ahora".
func buildFilter(req dto.TransactionListRequest) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Type:      req.Type,
	}
	if req.Type != "" && !domledger.IsValidType(req.Type) {
		return filter, fmt.Errorf("%w: tipo de transacción desconocido %q", domain.ErrInvalidInput, req.Type)
	}
	if req.StartDate != "" {
		from, err := parseDate(req.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: start_date inválida", domain.ErrInvalidInput)
		}
		filter.From = &from
		to := time.Now()
		filter.To = &to
	}
	if req.EndDate != "" {
		to, err := parseDate(req.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: end_date inválida", domain.ErrInvalidInput)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return filter, nil
}

// parseDate acepta RFC 3339 o fecha simple YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toTransactionResponse(t *repository.TransactionWithNames) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		ProductID:      t.ProductID,
		QuantityChange: t.QuantityChange,
		Type:           t.Type,
		Notes:          t.Notes,
		UnitPrice:      t.UnitPrice,
		TotalValue:     t.TotalValue,
		CreatedAt:      t.CreatedAt,
		ProductName:    t.ProductName,
		UserName:       t.UserName,
	}
}
