// Package ledger contiene las reglas puras del kardex: la tabla de tipos de
// transacción (signo esperado, si afecta stock, exenciones) y la política de
// autorización por rol. Sin efectos secundarios ni dependencias de
// infraestructura; el caso de uso en internal/application/ledger las invoca
// explícitamente al inicio de cada operación.
package ledger

// Tipos de transacción del kardex (enumeración cerrada).
const (
	// Disminuyen stock (cambio negativo esperado).
	TypePurchase    = "purchase"
	TypeReturn      = "return"
	TypeDamaged     = "damaged"
	TypeExpired     = "expired"
	TypeTransferOut = "transfer_out"
	TypeLost        = "lost"

	// Aumentan stock (cambio positivo esperado).
	TypeRestock    = "restock"
	TypeAdjustment = "adjustment"
	TypeTransferIn = "transfer_in"
	TypeFound      = "found"
	TypeRelease    = "release"

	// Neutros: cualquier signo y no tocan stock.
	TypeHold       = "hold"
	TypeSample     = "sample"
	TypeCycleCount = "cycle_count"
)

// Sign es el signo esperado del cambio de cantidad para un tipo.
type Sign int

const (
	SignNegative Sign = iota - 1
	SignEither
	SignPositive
)

// signByType tabla estática tipo -> signo esperado. Un tipo fuera de la tabla
// no es un tipo válido del kardex.
var signByType = map[string]Sign{
	TypePurchase:    SignNegative,
	TypeReturn:      SignNegative,
	TypeDamaged:     SignNegative,
	TypeExpired:     SignNegative,
	TypeTransferOut: SignNegative,
	TypeLost:        SignNegative,

	TypeRestock:    SignPositive,
	TypeAdjustment: SignPositive,
	TypeTransferIn: SignPositive,
	TypeFound:      SignPositive,
	TypeRelease:    SignPositive,

	TypeHold:       SignEither,
	TypeSample:     SignEither,
	TypeCycleCount: SignEither,
}

// IsValidType indica si el tipo pertenece a la enumeración del kardex.
func IsValidType(t string) bool {
	_, ok := signByType[t]
	return ok
}

// ExpectedSign devuelve el signo esperado del cambio para el tipo.
// Para tipos desconocidos devuelve SignEither; validar antes con IsValidType.
func ExpectedSign(t string) Sign {
	return signByType[t]
}

// AffectsStock indica si el tipo modifica la cantidad del producto.
// Solo hold, sample y cycle_count dejan el stock intacto (igual registran asiento).
func AffectsStock(t string) bool {
	switch t {
	case TypeHold, TypeSample, TypeCycleCount:
		return false
	}
	return true
}

// AllowsNegativeStock indica si el tipo puede llevar la cantidad por debajo de
// cero. Son tipos correctivos disparados por recuentos externos; un saldo
// negativo resultante se concilia después con un cycle_count, no es error del
// sistema.
func AllowsNegativeStock(t string) bool {
	switch t {
	case TypeReturn, TypeDamaged, TypeExpired:
		return true
	}
	return false
}

// AllowsInactiveProduct indica si el tipo puede operar sobre un producto
// inactivo: devoluciones y bajas por daño se permiten para cerrar pendientes
// después de desactivar el producto.
func AllowsInactiveProduct(t string) bool {
	return t == TypeReturn || t == TypeDamaged
}

// ConsistentSign verifica la coherencia tipo/signo: un tipo de salida con
// cambio positivo (o viceversa) es inválido. Los tipos neutros aceptan ambos.
func ConsistentSign(t string, quantityChange int64) bool {
	switch ExpectedSign(t) {
	case SignNegative:
		return quantityChange <= 0
	case SignPositive:
		return quantityChange >= 0
	}
	return true
}
