package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser un entero positivo")
	ErrProductNotFound    = errors.New("producto no encontrado o inactivo")
	ErrMissingReason      = errors.New("el motivo del movimiento es obligatorio")
	ErrMissingDetail      = errors.New("las notas son obligatorias para reportar daños")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDuplicateSKU       = errors.New("el SKU ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrTransient          = errors.New("fallo transitorio de almacenamiento")
)

// InsufficientStockError detalla un rechazo por stock insuficiente:
// cuánto se pidió y cuánto había disponible al momento de validar.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solicitados %d, disponibles %d", e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
