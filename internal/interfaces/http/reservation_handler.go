package http

import (
	"github.com/cmoralesv/AgroStock-api/internal/application/dto"
	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/gofiber/fiber/v2"
)

// ReservationHandler maneja el ciclo de vida de las reservas de stock.
type ReservationHandler struct {
	uc *inventory.ReservationUseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *inventory.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Create coloca una reserva ACTIVE sobre un ítem: retiene cantidad sin mover stock.
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Reserve(c.Context(), inventory.ReserveInput{
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		ActorID:    GetActorID(c),
		ActivityID: in.ActivityID,
	})
	if err != nil {
		return replyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReservationResponse(res))
}

// Release libera una reserva ACTIVE: la cantidad vuelve a estar disponible
// sin tocar el libro de movimientos.
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	if err := h.uc.Release(c.Context(), c.Params("id")); err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva liberada"})
}

// Use confirma el consumo de una reserva ACTIVE: descuenta stock y registra
// la entrada RESERVATION_USE en el libro.
func (h *ReservationHandler) Use(c *fiber.Ctx) error {
	entry, err := h.uc.Use(c.Context(), c.Params("id"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(toMovementResponse(entry))
}

// List lista reservas con paginación.
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	list, err := h.uc.ListReservations(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return replyError(c, err)
	}
	reservations := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		reservations = append(reservations, *toReservationResponse(r))
	}
	return c.JSON(dto.ReservationListResponse{
		Reservations: reservations,
		Page:         dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// ListByItem lista las reservas de un ítem.
func (h *ReservationHandler) ListByItem(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	list, err := h.uc.ListByItem(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return replyError(c, err)
	}
	reservations := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		reservations = append(reservations, *toReservationResponse(r))
	}
	return c.JSON(dto.ReservationListResponse{
		Reservations: reservations,
		Page:         dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
