package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MarcelaGodoy93/inventario-pro/internal/application/auth"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/inventory"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/reports"
	"github.com/MarcelaGodoy93/inventario-pro/internal/application/usecase"
	"github.com/MarcelaGodoy93/inventario-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	UserUC           *usecase.UserUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ReportUC         *reports.ReportUseCase
	JWTSecret        string
}

// route entrada de la tabla de permisos: método, ruta, roles permitidos y handler.
// Con Roles vacío basta estar autenticado.
type route struct {
	Method  string
	Path    string
	Roles   []string
	Handler fiber.Handler
}

// Router registra las rutas de la API. Los permisos por rol viven en una sola
// tabla en vez de repartirse por los handlers; así cada cambio de política se
// revisa en un solo lugar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	productHandler := NewProductHandler(deps.ProductUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	userHandler := NewUserHandler(deps.UserUC)
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	reportHandler := NewReportHandler(deps.ReportUC)

	managerUp := []string{entity.RoleManager, entity.RoleAdmin}
	adminOnly := []string{entity.RoleAdmin}

	// Tabla de permisos de las rutas protegidas. Las rutas de /users/:id no
	// llevan rol porque el use case aplica la regla "admin o el propio usuario".
	table := []route{
		{fiber.MethodGet, "/auth/user", nil, authHandler.Me},

		{fiber.MethodGet, "/products", nil, productHandler.List},
		{fiber.MethodGet, "/products/:id", nil, productHandler.GetByID},
		{fiber.MethodPost, "/products", managerUp, productHandler.Create},
		{fiber.MethodPut, "/products/:id", managerUp, productHandler.Update},
		{fiber.MethodDelete, "/products/:id", adminOnly, productHandler.Delete},

		{fiber.MethodGet, "/categories", nil, categoryHandler.List},
		{fiber.MethodGet, "/categories/:id", nil, categoryHandler.GetByID},
		{fiber.MethodPost, "/categories", managerUp, categoryHandler.Create},
		{fiber.MethodPut, "/categories/:id", managerUp, categoryHandler.Update},
		{fiber.MethodDelete, "/categories/:id", adminOnly, categoryHandler.Delete},

		{fiber.MethodGet, "/users", adminOnly, userHandler.List},
		{fiber.MethodGet, "/users/:id", nil, userHandler.GetByID},
		{fiber.MethodPut, "/users/:id", nil, userHandler.Update},
		{fiber.MethodPut, "/users/:id/password", nil, userHandler.ChangePassword},

		{fiber.MethodPost, "/movements", nil, movementHandler.Register},
		{fiber.MethodGet, "/movements", managerUp, movementHandler.List},

		{fiber.MethodGet, "/reports/dashboard", nil, reportHandler.Dashboard},
		{fiber.MethodGet, "/reports/inventory", managerUp, reportHandler.Inventory},
		{fiber.MethodGet, "/reports/movements", managerUp, reportHandler.Movements},
	}

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	for _, r := range table {
		protected.Add(r.Method, r.Path, RequireRole(r.Roles...), r.Handler)
	}
}
