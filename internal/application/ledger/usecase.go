package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	domledger "github.com/jhoicas/Kardex-api/internal/domain/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// RecordTransactionUseCase registra asientos del kardex de forma transaccional:
// valida (tipo, rol, signo, cantidad), bloquea la fila del producto
// (SELECT FOR UPDATE), aplica el cambio de cantidad y persiste el asiento con
// Commit/Rollback. Toda mutación de Product.Quantity pasa por aquí.
type RecordTransactionUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewRecordTransactionUseCase construye el caso de uso.
func NewRecordTransactionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// RecordTransaction valida y registra un asiento. Las precondiciones se
// evalúan en orden fijo y la primera que falla gana, sin efectos parciales:
//
//  1. cantidad distinta de cero y tipo conocido
//  2. usuario y producto existen
//  3. producto inactivo solo admite return/damaged (si el tipo afecta stock)
//  4. política de autorización rol/tipo/signo
//  5. coherencia tipo/signo (los neutros la omiten)
//  6. la cantidad resultante no puede ser negativa, salvo tipos correctivos
//     (return, damaged, expired)
//
// El paso 6 se evalúa dentro de la transacción contra la fila bloqueada, de
// modo que dos asientos concurrentes sobre el mismo producto se serializan y
// ninguno lee una cantidad obsoleta.
func (uc *RecordTransactionUseCase) RecordTransaction(
	ctx context.Context,
	in dto.CreateTransactionRequest,
	actingUserID, actingRole string,
) (*dto.TransactionResponse, error) {
	if in.QuantityChange == 0 {
		return nil, fmt.Errorf("%w: quantity_change no puede ser cero", domain.ErrInvalidInput)
	}
	if !domledger.IsValidType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de transacción desconocido %q", domain.ErrInvalidInput, in.Type)
	}

	user, err := uc.userRepo.GetByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if domledger.AffectsStock(in.Type) && !product.IsActive && !domledger.AllowsInactiveProduct(in.Type) {
		return nil, fmt.Errorf("%w: el producto está inactivo", domain.ErrInvalidInput)
	}

	if !domledger.IsAllowed(actingRole, in.Type, in.QuantityChange) {
		return nil, domain.ErrForbidden
	}

	if !domledger.ConsistentSign(in.Type, in.QuantityChange) {
		return nil, fmt.Errorf("%w: el tipo %q no admite un cambio con ese signo", domain.ErrInvalidInput, in.Type)
	}

	// Precio capturado al momento del asiento; inmutable después.
	unitPrice := product.Price
	if in.UnitPrice != nil {
		if !in.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: unit_price debe ser positivo", domain.ErrInvalidInput)
		}
		unitPrice = *in.UnitPrice
	}
	totalValue := unitPrice.Mul(decimal.NewFromInt(abs(in.QuantityChange)))

	entry := &entity.Transaction{
		UserID:         actingUserID,
		ProductID:      in.ProductID,
		QuantityChange: in.QuantityChange,
		Type:           in.Type,
		UnitPrice:      unitPrice,
		TotalValue:     totalValue,
		Notes:          in.Notes,
	}

	// Transacción: bloquear fila del producto, re-validar cantidad contra la
	// lectura bloqueada, aplicar y asentar. Commit si todo ok, Rollback si no.
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		locked, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if domledger.AffectsStock(in.Type) {
			newQuantity := locked.Quantity + in.QuantityChange
			if newQuantity < 0 && !domledger.AllowsNegativeStock(in.Type) {
				return domain.ErrInsufficientQuantity
			}
			if err := productRepo.UpdateQuantity(ctx, in.ProductID, newQuantity); err != nil {
				return err
			}
		}
		return txRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransactionResponse{
		ID:             entry.ID,
		UserID:         entry.UserID,
		ProductID:      entry.ProductID,
		QuantityChange: entry.QuantityChange,
		Type:           entry.Type,
		Notes:          entry.Notes,
		UnitPrice:      entry.UnitPrice,
		TotalValue:     entry.TotalValue,
		CreatedAt:      entry.CreatedAt,
		ProductName:    product.Name,
		UserName:       user.Name,
	}, nil
}

// AdjustQuantityDirect atajo de admin: registra el cambio por el mismo camino
// atómico que RecordTransaction, como asiento type=adjustment. A diferencia
// del asiento normal acepta ambos signos (un ajuste manual puede corregir en
// cualquier dirección), pero nunca deja la cantidad negativa y exige producto
// activo. Retorna la cantidad resultante.
func (uc *RecordTransactionUseCase) AdjustQuantityDirect(
	ctx context.Context,
	productID string,
	quantityChange int64,
	notes string,
	actingUserID, actingRole string,
) (int64, error) {
	if quantityChange == 0 {
		return 0, fmt.Errorf("%w: quantity_change no puede ser cero", domain.ErrInvalidInput)
	}
	if actingRole != entity.RoleAdmin {
		return 0, domain.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(ctx, actingUserID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.ErrUserNotFound
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	if !product.IsActive {
		return 0, fmt.Errorf("%w: el producto está inactivo", domain.ErrInvalidInput)
	}

	unitPrice := product.Price
	entry := &entity.Transaction{
		UserID:         actingUserID,
		ProductID:      productID,
		QuantityChange: quantityChange,
		Type:           domledger.TypeAdjustment,
		UnitPrice:      unitPrice,
		TotalValue:     unitPrice.Mul(decimal.NewFromInt(abs(quantityChange))),
		Notes:          notes,
	}

	var newQuantity int64
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		locked, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newQuantity = locked.Quantity + quantityChange
		if newQuantity < 0 {
			return fmt.Errorf("%w: el ajuste dejaría la cantidad en %d", domain.ErrInvalidInput, newQuantity)
		}
		if err := productRepo.UpdateQuantity(ctx, productID, newQuantity); err != nil {
			return err
		}
		return txRepo.Create(ctx, entry)
	})
	if err != nil {
		return 0, err
	}
	return newQuantity, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
