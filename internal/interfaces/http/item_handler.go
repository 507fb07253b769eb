package http

import (
	"github.com/cmoralesv/AgroStock-api/internal/application/dto"
	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler maneja las peticiones HTTP del catálogo de ítems de inventario.
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create registra un ítem nuevo con su stock inicial (entrada REGISTER en el libro).
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), inventory.CreateItemInput{
		Name:              in.Name,
		Description:       in.Description,
		MaterialKind:      in.MaterialKind,
		ItemKind:          in.ItemKind,
		PackagingUnit:     in.PackagingUnit,
		PackagingQuantity: in.PackagingQuantity,
		InitialPackages:   in.InitialPackages,
		UnitCostPackaging: in.UnitCostPackaging,
		MinStock:          in.MinStock,
		WarehouseID:       in.WarehouseID,
		SupplierID:        in.SupplierID,
		CategoryID:        in.CategoryID,
		AcquisitionCost:   in.AcquisitionCost,
		ResidualValue:     in.ResidualValue,
		UsefulLifeHours:   in.UsefulLifeHours,
		ActorID:           GetActorID(c),
		Note:              in.Note,
	})
	if err != nil {
		return replyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// GetByID devuelve un ítem. Los eliminados lógicamente responden 404.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Update actualiza los campos editables de un ítem. Stock y costo no se
// aceptan aquí: solo mutan a través de movimientos.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), inventory.UpdateItemInput{
		Name:              in.Name,
		Description:       in.Description,
		PackagingUnit:     in.PackagingUnit,
		PackagingQuantity: in.PackagingQuantity,
		MinStock:          in.MinStock,
		SupplierID:        in.SupplierID,
		CategoryID:        in.CategoryID,
		ResidualValue:     in.ResidualValue,
		UsefulLifeHours:   in.UsefulLifeHours,
	})
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Delete elimina lógicamente un ítem (entrada DELETE en el libro; el
// historial y el stock congelado se conservan).
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDeleteItem(c.Context(), c.Params("id"), GetActorID(c)); err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ítem eliminado"})
}

// Restore revierte la eliminación lógica de un ítem.
func (h *ItemHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.RestoreItem(c.Context(), c.Params("id"), GetActorID(c)); err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ítem restaurado"})
}

// List lista ítems con paginación. include_deleted=true incluye los eliminados.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	includeDeleted := c.QueryBool("include_deleted")

	list, err := h.uc.ListItems(c.Context(), includeDeleted, page.Limit, page.Offset)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(itemListResponse(list, page))
}

// ListLowStock lista consumibles cuyo stock disponible está en o bajo el
// umbral de reorden.
func (h *ItemHandler) ListLowStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	list, err := h.uc.ListLowStock(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(itemListResponse(list, page))
}

// Summary devuelve los agregados del inventario: totales y valor.
func (h *ItemHandler) Summary(c *fiber.Ctx) error {
	s, err := h.uc.Summary(c.Context())
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(dto.StockSummaryResponse{
		TotalItems:     s.TotalItems,
		LowStockItems:  s.LowStockItems,
		OutOfStock:     s.OutOfStock,
		InventoryValue: s.InventoryValue,
	})
}

// StartMaintenance pone un activo fijo en mantenimiento (no reservable).
func (h *ItemHandler) StartMaintenance(c *fiber.Ctx) error {
	if err := h.uc.SetMaintenance(c.Context(), c.Params("id")); err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{"message": "activo en mantenimiento"})
}

// EndMaintenance saca un activo fijo de mantenimiento.
func (h *ItemHandler) EndMaintenance(c *fiber.Ctx) error {
	if err := h.uc.EndMaintenance(c.Context(), c.Params("id")); err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{"message": "mantenimiento finalizado"})
}

func itemListResponse(list []*entity.InventoryItem, page dto.PageRequest) dto.ItemListResponse {
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
