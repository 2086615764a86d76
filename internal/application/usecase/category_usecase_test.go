package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/usecase"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
)

func buildCategoryUseCase() (*usecase.CategoryUseCase, *fakeCategoryRepo) {
	repo := &fakeCategoryRepo{categories: map[string]*entity.Category{}}
	return usecase.NewCategoryUseCase(repo), repo
}

// Crear aplica el color e icono por defecto y marca la categoría activa.
func TestCategoryCreate_ValoresPorDefecto(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	out, err := uc.Create("user-1", dto.CreateCategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)

	assert.Equal(t, "#2196F3", out.Color)
	assert.Equal(t, "category", out.Icon)
	assert.True(t, out.IsActive)
	assert.Equal(t, "user-1", out.CreatedBy)
}

// El nombre es único.
func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	_, err := uc.Create("user-1", dto.CreateCategoryRequest{Name: "Pinturas"})
	require.NoError(t, err)

	_, err = uc.Create("user-1", dto.CreateCategoryRequest{Name: "Pinturas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Los colores deben ser hexadecimales (#RGB o #RRGGBB).
func TestCategoryCreate_ColorInvalido(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	_, err := uc.Create("user-1", dto.CreateCategoryRequest{Name: "Rojos", Color: "rojo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create("user-1", dto.CreateCategoryRequest{Name: "Rojos", Color: "#F00"})
	assert.NoError(t, err, "#RGB corto es válido")
}

// El padre debe existir y una categoría no puede ser su propio padre.
func TestCategoryUpdate_Padre(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	parent, err := uc.Create("user-1", dto.CreateCategoryRequest{Name: "Padre"})
	require.NoError(t, err)
	child, err := uc.Create("user-1", dto.CreateCategoryRequest{Name: "Hija"})
	require.NoError(t, err)

	self := child.ID
	_, err = uc.Update(child.ID, dto.UpdateCategoryRequest{ParentID: &self})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una categoría no puede ser su propio padre")

	ghost := "no-existe"
	_, err = uc.Update(child.ID, dto.UpdateCategoryRequest{ParentID: &ghost})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pid := parent.ID
	out, err := uc.Update(child.ID, dto.UpdateCategoryRequest{ParentID: &pid})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, out.ParentID)
}

// Deactivate es borrado lógico.
func TestCategoryDeactivate(t *testing.T) {
	uc, repo := buildCategoryUseCase()

	created, err := uc.Create("user-1", dto.CreateCategoryRequest{Name: "Temporal"})
	require.NoError(t, err)

	out, err := uc.Deactivate(created.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	stored, _ := repo.GetByID(created.ID)
	require.NotNil(t, stored, "la fila se conserva")
	assert.False(t, stored.IsActive)
}

// Deactivate de una categoría inexistente devuelve nil (el handler lo
// traduce a 404).
func TestCategoryDeactivate_Inexistente(t *testing.T) {
	uc, _ := buildCategoryUseCase()

	out, err := uc.Deactivate("no-existe")
	require.NoError(t, err)
	assert.Nil(t, out)
}
