package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReserveRequest body para colocar una reserva sobre un ítem.
type ReserveRequest struct {
	ItemID     string          `json:"item_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	ActivityID string          `json:"activity_id"`
}

// ReservationResponse salida de una reserva.
type ReservationResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason,omitempty"`
	Status     string          `json:"status"`
	ActorID    string          `json:"actor_id,omitempty"`
	ActivityID string          `json:"activity_id,omitempty"`
	ReservedAt time.Time       `json:"reserved_at"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
}

// ReservationListResponse lista paginada de reservas.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Page         PageResponse          `json:"page"`
}

// RegisterUsageRequest body para registrar horas de uso sobre un activo fijo.
type RegisterUsageRequest struct {
	Hours decimal.Decimal `json:"hours"`
}

// UsageResponse resultado de registrar horas de uso: depreciación generada
// y estado resultante del activo.
type UsageResponse struct {
	ItemID      string          `json:"item_id"`
	Generated   decimal.Decimal `json:"depreciation_generated"`
	Accumulated decimal.Decimal `json:"accumulated_depreciation"`
	BookValue   decimal.Decimal `json:"book_value"`
	HoursUsed   decimal.Decimal `json:"hours_used"`
	Status      string          `json:"status"`
}
