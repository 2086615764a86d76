package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un producto. El borrado es lógico:
// DELETE sobre la API cambia el estado a inactive, nunca elimina la fila.
const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// Unidades de medida permitidas.
const (
	UnitPiezas = "piezas"
	UnitKg     = "kg"
	UnitLitros = "litros"
	UnitMetros = "metros"
	UnitCajas  = "cajas"
)

// ValidUnit indica si la unidad pertenece al conjunto permitido.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitPiezas, UnitKg, UnitLitros, UnitMetros, UnitCajas:
		return true
	}
	return false
}

// ValidProductStatus indica si el estado pertenece al ciclo de vida definido.
func ValidProductStatus(status string) bool {
	switch status {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product representa un producto del catálogo. Quantity solo se modifica vía
// movimientos de inventario (ver application/inventory); el invariante es
// Quantity >= 0 siempre.
type Product struct {
	ID          string
	Name        string
	Description string
	SKU         string // único, siempre en mayúsculas
	CategoryID  string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de adquisición
	Quantity    int
	MinStock    int
	MaxStock    int
	Unit        string // piezas, kg, litros, metros, cajas
	Barcode     string
	Supplier    string
	Status      string // active, inactive, discontinued
	CreatedBy   string // UserID
	UpdatedBy   string // UserID del último editor
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo de su stock mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// TotalValue devuelve el valor total del stock (cantidad × precio).
func (p *Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
