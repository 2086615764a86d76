package usecase

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

var hexColorRe = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único; el color por defecto es
// #2196F3 y el icono "category".
func (uc *CategoryUseCase) Create(userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" || len(in.Name) > 50 {
		return nil, domain.ErrInvalidInput
	}
	color := in.Color
	if color == "" {
		color = "#2196F3"
	}
	if !hexColorRe.MatchString(color) {
		return nil, domain.ErrInvalidInput
	}
	icon := in.Icon
	if icon == "" {
		icon = "category"
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Color:       color,
		Icon:        icon,
		IsActive:    true,
		ParentID:    in.ParentID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, 0), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category, 0), nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != category.Name {
		if *in.Name == "" || len(*in.Name) > 50 {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != category.ID {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Color != nil {
		if !hexColorRe.MatchString(*in.Color) {
			return nil, domain.ErrInvalidInput
		}
		category.Color = *in.Color
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	if in.ParentID != nil {
		if *in.ParentID == category.ID {
			return nil, domain.ErrInvalidInput // una categoría no puede ser su propio padre
		}
		if *in.ParentID != "" {
			parent, err := uc.repo.GetByID(*in.ParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, domain.ErrNotFound
			}
		}
		category.ParentID = *in.ParentID
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, 0), nil
}

// List lista categorías con su conteo de productos activos.
func (uc *CategoryUseCase) List(limit, offset int) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(&c.Category, c.ProductCount))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate borra lógicamente una categoría (IsActive=false).
func (uc *CategoryUseCase) Deactivate(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	category.IsActive = false
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, 0), nil
}

func toCategoryResponse(c *entity.Category, productCount int) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Color:        c.Color,
		Icon:         c.Icon,
		IsActive:     c.IsActive,
		ParentID:     c.ParentID,
		ProductCount: productCount,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
