package http

import (
	"github.com/cmoralesv/AgroStock-api/internal/application/dto"
	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/gofiber/fiber/v2"
)

// AssetHandler maneja la depreciación por uso de activos fijos.
type AssetHandler struct {
	uc *inventory.DepreciationUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *inventory.DepreciationUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// RegisterUsage suma horas de uso a un activo fijo y devuelve la depreciación
// generada, el valor en libros y el estado resultante.
func (h *AssetHandler) RegisterUsage(c *fiber.Ctx) error {
	var in dto.RegisterUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.RegisterUsage(c.Context(), c.Params("id"), in.Hours)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(toUsageResponse(result))
}
