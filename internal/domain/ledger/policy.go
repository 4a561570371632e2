package ledger

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// IsAllowed decide si un rol puede registrar un asiento (rol, tipo, signo del
// cambio). Función total: nunca falla, la negación es un bool que el caso de
// uso escala a ErrForbidden.
//
// Regla única y centralizada (sin copias repartidas en handlers):
//   - user: solo compras (type=purchase) con cambio negativo.
//   - admin: cualquier tipo; la coherencia de signo la valida ConsistentSign.
func IsAllowed(role, transactionType string, quantityChange int64) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleUser:
		return transactionType == TypePurchase && quantityChange < 0
	}
	return false
}
