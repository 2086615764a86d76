package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada       = "entrada"
	MovementTypeSalida        = "salida"
	MovementTypeAjuste        = "ajuste"
	MovementTypeTransferencia = "transferencia"
)

// Motivos de negocio para un movimiento.
const (
	ReasonCompra               = "compra"
	ReasonVenta                = "venta"
	ReasonDevolucion           = "devolucion"
	ReasonAjusteInventario     = "ajuste_inventario"
	ReasonProductoDanado       = "producto_dañado"
	ReasonProductoVencido      = "producto_vencido"
	ReasonTransferenciaEntrada = "transferencia_entrada"
	ReasonTransferenciaSalida  = "transferencia_salida"
)

// ValidMovementType indica si el tipo pertenece al conjunto permitido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste, MovementTypeTransferencia:
		return true
	}
	return false
}

// ValidMovementReason indica si el motivo pertenece al conjunto permitido.
func ValidMovementReason(r string) bool {
	switch r {
	case ReasonCompra, ReasonVenta, ReasonDevolucion, ReasonAjusteInventario,
		ReasonProductoDanado, ReasonProductoVencido,
		ReasonTransferenciaEntrada, ReasonTransferenciaSalida:
		return true
	}
	return false
}

// Movement representa una entrada del libro de movimientos de inventario.
// Es append-only: nunca se modifica ni se elimina. Cada movimiento captura
// la cantidad del producto antes y después de aplicarse, de modo que
// NewQuantity del movimiento más reciente coincide con Product.Quantity.
type Movement struct {
	ID               string
	ProductID        string
	Type             string // entrada, salida, ajuste, transferencia
	Quantity         int    // delta aplicado, siempre > 0
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	Reference        string
	Notes            string
	UserID           string
	Cost             decimal.Decimal // costo unitario asociado, cero si no aplica
	CreatedAt        time.Time
}
