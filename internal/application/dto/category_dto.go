package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=200"`
	Color       string `json:"color"` // vacío = #2196F3
	Icon        string `json:"icon"`  // vacío = category
	ParentID    string `json:"parent_id"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	ParentID    *string `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Color        string    `json:"color"`
	Icon         string    `json:"icon"`
	IsActive     bool      `json:"is_active"`
	ParentID     string    `json:"parent_id,omitempty"`
	ProductCount int       `json:"product_count"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryListResponse lista de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
