package entity

import "time"

// Category representa una categoría de productos (jerárquica opcional vía ParentID).
type Category struct {
	ID          string
	Name        string // único
	Description string
	Color       string // código hexadecimal, ej. #2196F3
	Icon        string
	IsActive    bool
	ParentID    string // vacío si es raíz
	CreatedBy   string // UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
