package http

import (
	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/application/usecase"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC        *inventory.ItemUseCase
	MovementUC    *inventory.MovementUseCase
	ReservationUC *inventory.ReservationUseCase
	AssetUC       *inventory.DepreciationUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	CategoryUC    *usecase.CategoryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ítems de inventario
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.ListLowStock)
	items.Get("/summary", itemHandler.Summary)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/restore", itemHandler.Restore)
	items.Post("/:id/maintenance", itemHandler.StartMaintenance)
	items.Delete("/:id/maintenance", itemHandler.EndMaintenance)

	// Libro de movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Post)
	movements.Get("/", movementHandler.List)
	items.Get("/:id/movements", movementHandler.ListByItem)

	// Reservas
	reservations := api.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Create)
	reservations.Get("/", reservationHandler.List)
	reservations.Post("/:id/release", reservationHandler.Release)
	reservations.Post("/:id/use", reservationHandler.Use)
	items.Get("/:id/reservations", reservationHandler.ListByItem)

	// Depreciación por uso de activos fijos
	assetHandler := NewAssetHandler(deps.AssetUC)
	items.Post("/:id/usage", assetHandler.RegisterUsage)

	// Catálogo
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
}
