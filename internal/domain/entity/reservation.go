package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva. ACTIVE transiciona exactamente una vez a RELEASED o USED;
// los estados terminales son finales.
const (
	ReservationStatusActive   = "ACTIVE"
	ReservationStatusReleased = "RELEASED"
	ReservationStatusUsed     = "USED"
)

// Reservation es una retención de stock previa al consumo confirmado: bloquea
// cantidad (incrementa ReservedUsage del ítem) sin mover stock hasta Use.
type Reservation struct {
	ID         string
	ItemID     string
	Quantity   decimal.Decimal // en unidad de uso
	Reason     string
	Status     string
	ActorID    string
	ActivityID string
	ReservedAt time.Time
	ResolvedAt *time.Time // momento de RELEASED o USED
}

// IsActive indica si la reserva aún retiene stock.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}
