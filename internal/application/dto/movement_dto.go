package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento de inventario.
// Para type=ajuste, Quantity es la cantidad absoluta resultante; para el
// resto de tipos es el delta (> 0) que se suma o resta según el tipo.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Type      string           `json:"type" validate:"required"`
	Quantity  int              `json:"quantity"`
	Reason    string           `json:"reason" validate:"required"`
	Reference string           `json:"reference"`
	Notes     string           `json:"notes" validate:"max=300"`
	Cost      *decimal.Decimal `json:"cost"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Type             string          `json:"type"`
	Quantity         int             `json:"quantity"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
	Reason           string          `json:"reason"`
	Reference        string          `json:"reference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	UserID           string          `json:"user_id"`
	Cost             decimal.Decimal `json:"cost"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
