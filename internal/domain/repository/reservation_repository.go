package repository

import "github.com/cmoralesv/AgroStock-api/internal/domain/entity"

// ReservationRepository define el puerto de persistencia para reservas de stock.
type ReservationRepository interface {
	Create(reservation *entity.Reservation) error
	GetByID(id string) (*entity.Reservation, error)
	// GetForUpdate bloquea la fila de la reserva dentro de la transacción.
	GetForUpdate(id string) (*entity.Reservation, error)
	// UpdateStatus marca la reserva RELEASED o USED y fija ResolvedAt.
	UpdateStatus(reservation *entity.Reservation) error
	List(limit, offset int) ([]*entity.Reservation, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.Reservation, error)
}
