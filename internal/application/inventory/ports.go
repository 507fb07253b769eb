package inventory

import (
	"context"

	"github.com/cmoralesv/AgroStock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es la frontera de atomicidad del motor: ítem + entrada del libro
// (o ítem + reserva) se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		resRepo repository.ReservationRepository,
	) error) error
}

// Nombres de eventos de cambio publicados para observadores externos.
const (
	EventItemCreated       = "inventory.item.created"
	EventItemUpdated       = "inventory.item.updated"
	EventItemDeleted       = "inventory.item.deleted"
	EventItemRestored      = "inventory.item.restored"
	EventMovementPosted    = "inventory.movement.posted"
	EventReservationPlaced = "inventory.reservation.placed"
	EventReservationFreed  = "inventory.reservation.released"
	EventReservationUsed   = "inventory.reservation.used"
	EventAssetDepreciated  = "inventory.asset.depreciated"
)

// EventPublisher publica notificaciones de cambio después de confirmar la transacción.
// La publicación es best-effort: un fallo del transporte no revierte la operación.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any)
}

// NopPublisher descarta los eventos. Útil en tests y despliegues sin broker.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) {}

// Metrics puerto de instrumentación de las operaciones del motor.
type Metrics interface {
	MovementPosted(movementType string)
	ReservationResolved(outcome string)
	InsufficientStock()
}

// NopMetrics implementación vacía para tests.
type NopMetrics struct{}

func (NopMetrics) MovementPosted(string)      {}
func (NopMetrics) ReservationResolved(string) {}
func (NopMetrics) InsufficientStock()         {}
