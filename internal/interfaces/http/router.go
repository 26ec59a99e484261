package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/posfin/pos-finanzas-api/internal/application/auth"
	"github.com/posfin/pos-finanzas-api/internal/application/cart"
	"github.com/posfin/pos-finanzas-api/internal/application/catalog"
	"github.com/posfin/pos-finanzas-api/internal/application/inventory"
	"github.com/posfin/pos-finanzas-api/internal/application/purchases"
	"github.com/posfin/pos-finanzas-api/internal/application/sales"
	"github.com/posfin/pos-finanzas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CartUC     *cart.UseCase
	SalesUC    *sales.UseCase
	PurchaseUC *purchases.UseCase
	CatalogUC  *catalog.UseCase
	Stock      *inventory.StockService
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Workspaces y carrito (protegido; cualquier operador)
	workspaces := protected.Group("/workspaces")
	workspaceHandler := NewWorkspaceHandler(deps.CartUC)
	workspaces.Post("/", workspaceHandler.Create)
	workspaces.Get("/", workspaceHandler.List)
	workspaces.Post("/:id/orders", workspaceHandler.AddToCart)
	workspaces.Get("/:id/orders", workspaceHandler.ListCart)
	workspaces.Delete("/:id/orders", workspaceHandler.ClearCart)
	workspaces.Delete("/orders/:lineId", workspaceHandler.RemoveLine)

	// Ventas (protegido; admin y cajero)
	salesGroup := protected.Group("/sales", RequireRole(entity.RoleAdmin, entity.RoleCajero))
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Process)

	// Compras y abonos a proveedores (protegido; admin y almacenista)
	purchasesGroup := protected.Group("/purchases", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista))
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Post("/payments", purchaseHandler.RecordPayment)

	// Catálogo de productos (protegido; alta y precios solo admin/almacenista)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), productHandler.Create)
	products.Post("/:id/prices", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), productHandler.AddPrice)
	products.Post("/:id/costs", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), productHandler.AddCost)

	// Inventario y libro de movimientos (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Stock)
	invGroup.Get("/:productId", inventoryHandler.GetLevel)
	invGroup.Get("/:productId/movements", inventoryHandler.ListMovements)
}
