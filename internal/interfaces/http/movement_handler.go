package http

import (
	"github.com/cmoralesv/AgroStock-api/internal/application/dto"
	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Post registra un movimiento sobre un ítem y devuelve la entrada del libro
// resultante. RESERVATION_USE no se acepta por esta vía: lo emite el flujo
// de reservas al confirmar el uso.
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.PostMovement(c.Context(), inventory.MovementInput{
		ItemID:            in.ItemID,
		Type:              entity.MovementType(in.Type),
		UsageQty:          in.UsageQty,
		PackagingQty:      in.PackagingQty,
		UnitCost:          in.UnitCost,
		Note:              in.Note,
		ActorID:           GetActorID(c),
		ActivityID:        in.ActivityID,
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
	})
	if err != nil {
		return replyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(entry))
}

// List devuelve el historial global, más recientes primero.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	list, err := h.uc.ListAllMovements(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(movementListResponse(list, page))
}

// ListByItem devuelve el historial de un ítem, más recientes primero.
// Incluye el historial de ítems eliminados lógicamente.
func (h *MovementHandler) ListByItem(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	list, err := h.uc.ListMovements(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(movementListResponse(list, page))
}

func movementListResponse(list []*entity.MovementEntry, page dto.PageRequest) dto.MovementListResponse {
	movements := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		movements = append(movements, *toMovementResponse(m))
	}
	return dto.MovementListResponse{
		Movements: movements,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
