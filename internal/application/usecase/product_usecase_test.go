package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/usecase"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.GetByID(id)
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) UpdateQuantity(id string, quantity int) error {
	if p, ok := f.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (f *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) List(limit, offset int) ([]repository.CategoryWithCount, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) GetLatestByProduct(string) (*entity.Movement, error) { return nil, nil }

func (f *fakeMovementRepo) List(repository.MovementFilter) ([]*entity.Movement, error) {
	return f.movements, nil
}

type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	return fn(f.products, f.movements)
}

func buildProductUseCase() (*usecase.ProductUseCase, *fakeProductRepo, *fakeMovementRepo) {
	products := newFakeProductRepo()
	categories := &fakeCategoryRepo{categories: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Herramientas", IsActive: true},
	}}
	movements := &fakeMovementRepo{}
	uc := usecase.NewProductUseCase(products, categories, &fakeTxRunner{products: products, movements: movements})
	return uc, products, movements
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Crear un producto con stock inicial registra exactamente un movimiento
// entrada 0 → Quantity junto con el producto.
func TestProductCreate_ConStockInicialRegistraMovimiento(t *testing.T) {
	uc, _, movements := buildProductUseCase()

	out, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name:       "Taladro",
		CategoryID: "cat-1",
		Price:      decimal.NewFromInt(1200),
		Cost:       decimal.NewFromInt(800),
		Quantity:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Quantity)
	assert.Equal(t, entity.ProductStatusActive, out.Status)

	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, entity.MovementTypeEntrada, mov.Type)
	assert.Equal(t, 0, mov.PreviousQuantity)
	assert.Equal(t, 5, mov.NewQuantity)
	assert.Equal(t, "Inventario inicial", mov.Reference)
}

// Crear sin stock no genera movimiento.
func TestProductCreate_SinStockNoRegistraMovimiento(t *testing.T) {
	uc, _, movements := buildProductUseCase()

	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name:       "Llave inglesa",
		CategoryID: "cat-1",
		Price:      decimal.NewFromInt(200),
		Cost:       decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Empty(t, movements.movements)
}

// Sin SKU explícito se genera uno a partir del nombre: tres letras sin acentos
// en mayúsculas + cuatro dígitos del timestamp.
func TestProductCreate_GeneraSKUDesdeNombre(t *testing.T) {
	uc, _, _ := buildProductUseCase()

	out, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name:       "Ángulo métrico",
		CategoryID: "cat-1",
		Price:      decimal.NewFromInt(10),
		Cost:       decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	require.Len(t, out.SKU, 7)
	assert.Equal(t, "ANG", out.SKU[:3], "los acentos deben plegarse a ASCII")
}

// GenerateSKU con nombres sin letras usa el prefijo de reserva.
func TestGenerateSKU(t *testing.T) {
	now := time.UnixMilli(1700000001234)

	assert.Equal(t, "MAR1234", usecase.GenerateSKU("Martillo", now))
	assert.Equal(t, "ANG1234", usecase.GenerateSKU("ángulo", now))
	assert.Equal(t, "PRD1234", usecase.GenerateSKU("1234", now))
	assert.Equal(t, "PRD1234", usecase.GenerateSKU("", now))
}

// SKU duplicado se rechaza con conflicto.
func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _, _ := buildProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "A", SKU: "ABC-1", CategoryID: "cat-1",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "B", SKU: "abc-1", CategoryID: "cat-1",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU se normaliza a mayúsculas antes de comparar")
}

// Categoría inexistente.
func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _ := buildProductUseCase()

	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "A", CategoryID: "no-existe",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// MinStock por defecto es 5 y la unidad por defecto piezas.
func TestProductCreate_ValoresPorDefecto(t *testing.T) {
	uc, _, _ := buildProductUseCase()

	out, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Clavos", CategoryID: "cat-1",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, out.MinStock)
	assert.Equal(t, entity.UnitPiezas, out.Unit)
}

// Update no puede tocar Quantity: no existe el campo en el DTO y la cantidad
// persiste tras cualquier edición.
func TestProductUpdate_NoModificaCantidad(t *testing.T) {
	uc, products, _ := buildProductUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "Sierra", CategoryID: "cat-1",
		Price: decimal.NewFromInt(300), Cost: decimal.NewFromInt(150),
		Quantity: 8,
	})
	require.NoError(t, err)

	newName := "Sierra circular"
	out, err := uc.Update("user-2", created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Sierra circular", out.Name)
	assert.Equal(t, 8, out.Quantity, "la cantidad solo cambia vía movimientos")
	assert.Equal(t, "user-2", out.UpdatedBy)

	p, _ := products.GetByID(created.ID)
	assert.Equal(t, 8, p.Quantity)
}

// Cambiar el SKU a uno ya usado por otro producto es conflicto.
func TestProductUpdate_SKUColision(t *testing.T) {
	uc, _, _ := buildProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "A", SKU: "AAA-1", CategoryID: "cat-1",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	b, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "B", SKU: "BBB-1", CategoryID: "cat-1",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	sku := "AAA-1"
	_, err = uc.Update("user-1", b.ID, dto.UpdateProductRequest{SKU: &sku})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Deactivate es borrado lógico: el producto queda inactive pero sigue existiendo.
func TestProductDeactivate_BorradoLogico(t *testing.T) {
	uc, products, _ := buildProductUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "Cinta", CategoryID: "cat-1",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	out, err := uc.Deactivate("admin-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusInactive, out.Status)

	p, _ := products.GetByID(created.ID)
	require.NotNil(t, p, "la fila no se elimina")
	assert.Equal(t, entity.ProductStatusInactive, p.Status)
}

// IsLowStock en la respuesta cuando quantity <= min_stock.
func TestProductResponse_IsLowStock(t *testing.T) {
	uc, _, _ := buildProductUseCase()

	minStock := 10
	out, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Tornillos", CategoryID: "cat-1",
		Price: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1),
		Quantity: 3, MinStock: &minStock,
	})
	require.NoError(t, err)
	assert.True(t, out.IsLowStock)
}
