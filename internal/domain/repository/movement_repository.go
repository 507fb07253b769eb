package repository

import "github.com/cmoralesv/AgroStock-api/internal/domain/entity"

// MovementRepository define el puerto del libro de movimientos. El libro es
// append-only: el puerto no expone update ni delete, por diseño del modelo de
// auditoría — el stock actual siempre es derivable re-aplicando las entradas.
type MovementRepository interface {
	Create(entry *entity.MovementEntry) error
	GetByID(id string) (*entity.MovementEntry, error)
	// ListByItem lista las entradas de un ítem, más recientes primero.
	ListByItem(itemID string, limit, offset int) ([]*entity.MovementEntry, error)
	List(limit, offset int) ([]*entity.MovementEntry, error)
}
