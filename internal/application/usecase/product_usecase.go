package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/inventory"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Quantity solo cambia vía
// movimientos; la creación con stock inicial inserta producto y movimiento
// "entrada" en la misma transacción.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txRunner     inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, txRunner: txRunner}
}

// Create valida y crea un producto. Si Quantity > 0, el movimiento de
// inventario inicial (entrada, ajuste_inventario, 0 → Quantity) se registra
// dentro de la misma transacción que el INSERT del producto.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.Cost.LessThan(decimal.Zero) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	minStock := 5
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	if in.MaxStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitPiezas
	}
	if !entity.ValidUnit(unit) {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	if sku == "" {
		sku = GenerateSKU(in.Name, time.Now())
	}
	existing, err := uc.repo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		SKU:         sku,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Cost:        in.Cost,
		Quantity:    in.Quantity,
		MinStock:    minStock,
		MaxStock:    in.MaxStock,
		Unit:        unit,
		Barcode:     in.Barcode,
		Supplier:    in.Supplier,
		Status:      entity.ProductStatusActive,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if product.Quantity > 0 {
			return inventory.RegisterInitialInTx(movementRepo, product, userID, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Quantity (se maneja vía
// movimientos). Registra quién hizo la edición en UpdatedBy.
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*in.SKU))
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
			product.SKU = sku
		}
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		if *in.MaxStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MaxStock = *in.MaxStock
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.Status != nil {
		if !entity.ValidProductStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	product.UpdatedBy = userID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Status == "" {
		filter.Status = entity.ProductStatusActive
	}
	list, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Deactivate borra lógicamente un producto: status pasa a inactive, la fila
// y su historial de movimientos se conservan.
func (uc *ProductUseCase) Deactivate(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	product.Status = entity.ProductStatusInactive
	product.UpdatedBy = userID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GenerateSKU deriva un SKU a partir del nombre: tres primeras letras sin
// acentos en mayúsculas + últimos cuatro dígitos del timestamp unix en milis.
func GenerateSKU(name string, now time.Time) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	var code []rune
	for _, r := range strings.ToUpper(folded) {
		if r >= 'A' && r <= 'Z' {
			code = append(code, r)
			if len(code) == 3 {
				break
			}
		}
	}
	if len(code) == 0 {
		code = []rune("PRD")
	}
	millis := fmt.Sprintf("%d", now.UnixMilli())
	return string(code) + millis[len(millis)-4:]
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Cost:        p.Cost,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		Unit:        p.Unit,
		Barcode:     p.Barcode,
		Supplier:    p.Supplier,
		Status:      p.Status,
		IsLowStock:  p.IsLowStock(),
		TotalValue:  p.TotalValue(),
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
