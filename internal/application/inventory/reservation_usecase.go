package inventory

import (
	"context"
	"time"

	"github.com/cmoralesv/AgroStock-api/internal/domain"
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/cmoralesv/AgroStock-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReservationUseCase implementa el protocolo de dos fases reservar → usar/liberar.
// Máquina de estados: ACTIVE → {RELEASED | USED}, una sola vez, sin reactivación.
// Cada operación bloquea la fila del ítem y escribe ítem + reserva (+ libro en Use)
// dentro de una misma transacción.
type ReservationUseCase struct {
	txRunner        TxRunner
	reservationRepo repository.ReservationRepository
	events          EventPublisher
	metrics         Metrics
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(
	txRunner TxRunner,
	reservationRepo repository.ReservationRepository,
	events EventPublisher,
	metrics Metrics,
) *ReservationUseCase {
	return &ReservationUseCase{
		txRunner:        txRunner,
		reservationRepo: reservationRepo,
		events:          events,
		metrics:         metrics,
	}
}

// ReserveInput entrada para colocar una reserva sobre un ítem.
type ReserveInput struct {
	ItemID     string
	Quantity   decimal.Decimal // en unidad de uso
	Reason     string
	ActorID    string
	ActivityID string
}

// Reserve coloca una retención ACTIVE sobre el stock de un ítem.
// Consumibles: exige cantidad ≤ disponible (stock - reservado) y marca LOW_STOCK
// si el disponible resultante queda en o bajo el umbral. Activos fijos: exigen
// estado AVAILABLE y pasan a RESERVED.
func (uc *ReservationUseCase) Reserve(ctx context.Context, input ReserveInput) (*entity.Reservation, error) {
	if input.ItemID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var reservation *entity.Reservation
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.MovementRepository,
		resRepo repository.ReservationRepository,
	) error {
		item, err := itemRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.IsDeleted() {
			return domain.ErrNotFound
		}

		if item.IsFixedAsset() {
			if item.Status != entity.ItemStatusAvailable {
				return domain.ErrAssetUnavailable
			}
			if item.StockUsage.Equal(decimal.NewFromInt(1)) {
				// Activo único: la reserva lo toma completo.
				item.ReservedUsage = decimal.NewFromInt(1)
			} else {
				if item.AvailableUsage().LessThan(input.Quantity) {
					return domain.ErrInsufficientStock
				}
				item.ReservedUsage = item.ReservedUsage.Add(input.Quantity)
			}
			item.Status = entity.ItemStatusReserved
		} else {
			if item.AvailableUsage().LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			item.ReservedUsage = item.ReservedUsage.Add(input.Quantity)
			if item.AvailableUsage().LessThanOrEqual(item.MinStock) {
				item.Status = entity.ItemStatusLowStock
			}
		}
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		reservation = &entity.Reservation{
			ItemID:     input.ItemID,
			Quantity:   input.Quantity,
			Reason:     input.Reason,
			Status:     entity.ReservationStatusActive,
			ActorID:    input.ActorID,
			ActivityID: input.ActivityID,
			ReservedAt: time.Now(),
		}
		return resRepo.Create(reservation)
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.InsufficientStock()
		}
		return nil, err
	}

	uc.events.Publish(ctx, EventReservationPlaced, reservation)
	return reservation, nil
}

// Release libera una reserva ACTIVE sin mover stock: decrementa el reservado
// (piso en 0) y, si un activo fijo queda sin reservas, lo devuelve a AVAILABLE.
func (uc *ReservationUseCase) Release(ctx context.Context, reservationID string) error {
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.MovementRepository,
		resRepo repository.ReservationRepository,
	) error {
		reservation, err := resRepo.GetForUpdate(reservationID)
		if err != nil {
			return err
		}
		if reservation == nil {
			return domain.ErrNotFound
		}
		if !reservation.IsActive() {
			return domain.ErrInvalidState
		}

		item, err := itemRepo.GetForUpdate(reservation.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		item.ReservedUsage = item.ReservedUsage.Sub(reservation.Quantity)
		if item.ReservedUsage.LessThan(decimal.Zero) {
			item.ReservedUsage = decimal.Zero
		}
		if item.IsFixedAsset() {
			if item.Status == entity.ItemStatusReserved && item.ReservedUsage.IsZero() {
				item.Status = entity.ItemStatusAvailable
			}
		} else {
			item.RecomputeConsumableStatus()
		}
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		now := time.Now()
		reservation.Status = entity.ReservationStatusReleased
		reservation.ResolvedAt = &now
		return resRepo.UpdateStatus(reservation)
	})
	if err != nil {
		return err
	}

	uc.metrics.ReservationResolved(entity.ReservationStatusReleased)
	uc.events.Publish(ctx, EventReservationFreed, map[string]string{"reservation_id": reservationID})
	return nil
}

// Use consume una reserva ACTIVE: descuenta stock y reservado por la cantidad
// reservada, recalcula el estado del ítem, emite exactamente una entrada
// RESERVATION_USE en el libro y marca la reserva USED. Todo en una transacción.
func (uc *ReservationUseCase) Use(ctx context.Context, reservationID string) (*entity.MovementEntry, error) {
	var entry *entity.MovementEntry
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		resRepo repository.ReservationRepository,
	) error {
		reservation, err := resRepo.GetForUpdate(reservationID)
		if err != nil {
			return err
		}
		if reservation == nil {
			return domain.ErrNotFound
		}
		if !reservation.IsActive() {
			return domain.ErrInvalidState
		}

		item, err := itemRepo.GetForUpdate(reservation.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		// Nunca postear un saldo negativo: mejor rechazar que corromper el libro.
		if item.StockUsage.LessThan(reservation.Quantity) {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		item.ReservedUsage = item.ReservedUsage.Sub(reservation.Quantity)
		if item.ReservedUsage.LessThan(decimal.Zero) {
			item.ReservedUsage = decimal.Zero
		}

		entry, err = ApplyMovement(item, MovementInput{
			ItemID:     item.ID,
			Type:       entity.MovementTypeReservationUse,
			UsageQty:   reservation.Quantity,
			Note:       reservation.Reason,
			ActorID:    reservation.ActorID,
			ActivityID: reservation.ActivityID,
		}, now)
		if err != nil {
			return err
		}
		if item.IsFixedAsset() {
			item.Status = entity.ItemStatusInUse
		}
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		if err := movRepo.Create(entry); err != nil {
			return err
		}

		reservation.Status = entity.ReservationStatusUsed
		reservation.ResolvedAt = &now
		return resRepo.UpdateStatus(reservation)
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.InsufficientStock()
		}
		return nil, err
	}

	uc.metrics.ReservationResolved(entity.ReservationStatusUsed)
	uc.metrics.MovementPosted(entry.Type.String())
	uc.events.Publish(ctx, EventReservationUsed, entry)
	log.Info().
		Str("reservation_id", reservationID).
		Str("item_id", entry.ItemID).
		Str("usage_qty", entry.UsageQty.String()).
		Msg("reserva consumida")
	return entry, nil
}

// ListReservations lista reservas con paginación.
func (uc *ReservationUseCase) ListReservations(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	return uc.reservationRepo.List(limit, offset)
}

// ListByItem lista las reservas de un ítem.
func (uc *ReservationUseCase) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Reservation, error) {
	return uc.reservationRepo.ListByItem(itemID, limit, offset)
}
