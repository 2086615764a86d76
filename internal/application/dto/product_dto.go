package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// SKU es opcional: si viene vacío se genera a partir del nombre.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=500"`
	SKU         string          `json:"sku"`
	CategoryID  string          `json:"category_id" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Quantity    int             `json:"quantity"`
	MinStock    *int            `json:"min_stock"` // nil = 5
	MaxStock    int             `json:"max_stock"`
	Unit        string          `json:"unit"` // vacío = piezas
	Barcode     string          `json:"barcode"`
	Supplier    string          `json:"supplier"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Quantity no aparece: el stock solo cambia vía movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	CategoryID  *string          `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	MinStock    *int             `json:"min_stock"`
	MaxStock    *int             `json:"max_stock"`
	Unit        *string          `json:"unit"`
	Barcode     *string          `json:"barcode"`
	Supplier    *string          `json:"supplier"`
	Status      *string          `json:"status"`
}

// ProductResponse salida de un producto, con los campos derivados calculados.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	CategoryID  string          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	MaxStock    int             `json:"max_stock"`
	Unit        string          `json:"unit"`
	Barcode     string          `json:"barcode,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	Status      string          `json:"status"`
	IsLowStock  bool            `json:"is_low_stock"`
	TotalValue  decimal.Decimal `json:"total_value"`
	CreatedBy   string          `json:"created_by"`
	UpdatedBy   string          `json:"updated_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
