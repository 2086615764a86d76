package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/auth"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/dto"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/inventory"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/reports"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/usecase"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/repository"
	apphttp "github.com/MarcelaGodoy93/inventario-pro/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para montar el router completo
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}
func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.byID[id], nil }

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) { return r.byEmail[email], nil }
func (r *memUserRepo) Update(u *entity.User) error {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}
func (r *memUserRepo) UpdateLastLogin(id string, at time.Time) error {
	if u, ok := r.byID[id]; ok {
		u.LastLogin = &at
	}
	return nil
}
func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) UpdateQuantity(id string, quantity int) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}
func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

type memCategoryRepo struct {
	categories map[string]*entity.Category
}

func (r *memCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.categories[id], nil
}
func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCategoryRepo) Update(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *memCategoryRepo) List(limit, offset int) ([]repository.CategoryWithCount, error) {
	return nil, nil
}

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *memMovementRepo) GetLatestByProduct(productID string) (*entity.Movement, error) {
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ProductID == productID {
			return r.movements[i], nil
		}
	}
	return nil, nil
}
func (r *memMovementRepo) List(repository.MovementFilter) ([]*entity.Movement, error) {
	return r.movements, nil
}

type memTxRunner struct {
	products  *memProductRepo
	movements *memMovementRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	return fn(r.products, r.movements)
}

// noopReportRepo devuelve resultados vacíos y guarda el último filtro de
// movimientos recibido para poder verificar lo que llega desde el handler.
type noopReportRepo struct {
	lastMovementFilter repository.MovementFilter
}

func (noopReportRepo) CountActiveProducts(context.Context) (int, error) { return 0, nil }

func (noopReportRepo) CountLowStockProducts(context.Context) (int, error) { return 0, nil }

func (noopReportRepo) CountActiveUsers(context.Context) (int, error) { return 0, nil }
func (noopReportRepo) CountMovementsSince(context.Context, time.Time) (int, error) {
	return 0, nil
}
func (noopReportRepo) InventoryValue(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (noopReportRepo) TopSoldProducts(context.Context, time.Time, int) ([]repository.TopProductResult, error) {
	return nil, nil
}
func (noopReportRepo) CategoryStats(context.Context) ([]repository.CategoryStatResult, error) {
	return nil, nil
}
func (noopReportRepo) InventoryRows(context.Context, repository.ProductFilter) ([]repository.InventoryRowResult, error) {
	return nil, nil
}
func (r *noopReportRepo) MovementRows(_ context.Context, filter repository.MovementFilter) ([]repository.MovementRowResult, error) {
	r.lastMovementFilter = filter
	return nil, nil
}

// apiEnv aplicación completa con repos en memoria y un token por rol.
type apiEnv struct {
	app     *fiber.App
	tokens  map[string]string // role → Bearer token
	reports *noopReportRepo
}

func buildAPI(t *testing.T) *apiEnv {
	t.Helper()

	users := newMemUserRepo()
	products := &memProductRepo{products: map[string]*entity.Product{}}
	categories := &memCategoryRepo{categories: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Herramientas", IsActive: true},
	}}
	movements := &memMovementRepo{}
	tx := &memTxRunner{products: products, movements: movements}
	reportsRepo := &noopReportRepo{}

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(products, categories, tx),
		CategoryUC:       usecase.NewCategoryUseCase(categories),
		UserUC:           usecase.NewUserUseCase(users),
		RegisterMovement: inventory.NewRegisterMovementUseCase(tx, movements),
		ReportUC:         reports.NewReportUseCase(reportsRepo),
		JWTSecret:        testJWTSecret,
	})

	tokens := make(map[string]string)
	for _, role := range []string{entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee} {
		out, err := authUC.Register(dto.RegisterRequest{
			Name:     role,
			Email:    role + "@example.com",
			Password: "secreta123",
			Role:     role,
		})
		require.NoError(t, err)
		tokens[role] = "Bearer " + out.Token
	}
	return &apiEnv{app: app, tokens: tokens, reports: reportsRepo}
}

func (e *apiEnv) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", e.tokens[role])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func productBody(name, sku string) map[string]any {
	return map[string]any{
		"name":        name,
		"sku":         sku,
		"category_id": "cat-1",
		"price":       "100",
		"cost":        "60",
		"quantity":    5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de roles sobre las rutas reales
// ──────────────────────────────────────────────────────────────────────────────

// Un employee no puede crear productos; un manager sí.
func TestRouter_CrearProductoPorRol(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodPost, "/api/products", entity.RoleEmployee, productBody("Taladro", "TAL-1"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "employee no puede crear productos")

	resp = env.do(t, http.MethodPost, "/api/products", entity.RoleManager, productBody("Taladro", "TAL-1"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "manager sí puede crear productos")
}

// Solo un admin puede desactivar productos, y la eliminación es lógica.
func TestRouter_EliminarProductoSoloAdmin(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodPost, "/api/products", entity.RoleAdmin, productBody("Sierra", "SIE-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = env.do(t, http.MethodDelete, "/api/products/"+created.ID, entity.RoleManager, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "manager no puede eliminar")

	resp = env.do(t, http.MethodDelete, "/api/products/"+created.ID, entity.RoleAdmin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	assert.Equal(t, entity.ProductStatusInactive, deleted.Status, "el borrado es lógico: status pasa a inactive")
}

// Cualquier usuario autenticado puede listar productos; sin token no.
func TestRouter_ListarProductos(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodGet, "/api/products", entity.RoleEmployee, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Cualquier usuario autenticado registra movimientos; la lista de movimientos
// es para manager y admin.
func TestRouter_MovimientosPorRol(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodPost, "/api/products", entity.RoleAdmin, productBody("Cinta", "CIN-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	movement := map[string]any{
		"product_id": created.ID,
		"type":       "entrada",
		"quantity":   3,
		"reason":     "compra",
	}
	resp = env.do(t, http.MethodPost, "/api/movements", entity.RoleEmployee, movement)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "employee puede registrar movimientos")

	resp = env.do(t, http.MethodGet, "/api/movements", entity.RoleEmployee, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "employee no ve la lista de movimientos")

	resp = env.do(t, http.MethodGet, "/api/movements", entity.RoleManager, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La lista de usuarios es solo para admin.
func TestRouter_ListaDeUsuariosSoloAdmin(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodGet, "/api/users", entity.RoleManager, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users", entity.RoleAdmin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Los reportes detallados son para manager y admin; el dashboard es general.
func TestRouter_ReportesPorRol(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodGet, "/api/reports/dashboard", entity.RoleEmployee, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el dashboard es para cualquier autenticado")

	resp = env.do(t, http.MethodGet, "/api/reports/inventory", entity.RoleEmployee, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/reports/inventory", entity.RoleManager, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// El reporte de movimientos pagina: limit/offset llegan al repositorio y se
// devuelven en la respuesta; sin parámetros aplica el límite por defecto.
func TestRouter_ReporteMovimientosPaginado(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodGet, "/api/reports/movements?limit=5&offset=10", entity.RoleManager, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, env.reports.lastMovementFilter.Limit)
	assert.Equal(t, 10, env.reports.lastMovementFilter.Offset)

	var out dto.MovementReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 5, out.Page.Limit)
	assert.Equal(t, 10, out.Page.Offset)

	resp = env.do(t, http.MethodGet, "/api/reports/movements", entity.RoleManager, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 50, env.reports.lastMovementFilter.Limit)
	assert.Equal(t, 0, env.reports.lastMovementFilter.Offset)
}

// Registro y login públicos; GET /api/auth/user devuelve el perfil del token.
func TestRouter_FlujoDeAuth(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Nueva",
		"email":    "nueva@example.com",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))
	resp.Body.Close()
	assert.Equal(t, entity.RoleEmployee, registered.User.Role)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nueva@example.com",
		"password": "secreta123",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	me, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer me.Body.Close()
	assert.Equal(t, http.StatusOK, me.StatusCode)

	var profile dto.UserResponse
	require.NoError(t, json.NewDecoder(me.Body).Decode(&profile))
	assert.Equal(t, "nueva@example.com", profile.Email)
}

// Un usuario solo puede ver su propio perfil; el admin ve el de cualquiera.
func TestRouter_PerfilAdminOPropio(t *testing.T) {
	env := buildAPI(t)

	resp := env.do(t, http.MethodGet, "/api/auth/user", entity.RoleEmployee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var employee dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&employee))
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/users/"+employee.ID, entity.RoleManager, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un manager no puede ver el perfil de otro")

	resp = env.do(t, http.MethodGet, "/api/users/"+employee.ID, entity.RoleAdmin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users/"+employee.ID, entity.RoleEmployee, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el propio usuario sí puede verse")
}
