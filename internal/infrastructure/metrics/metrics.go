package metrics

import (
	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ inventory.Metrics = (*Recorder)(nil)

// Recorder implementa el puerto de métricas del motor sobre Prometheus.
type Recorder struct {
	movements    *prometheus.CounterVec
	reservations *prometheus.CounterVec
	stockouts    prometheus.Counter
}

// NewRecorder registra los contadores en el registry por defecto.
func NewRecorder() *Recorder {
	return &Recorder{
		movements: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrostock",
			Name:      "movements_total",
			Help:      "Entradas registradas en el libro de movimientos, por tipo.",
		}, []string{"type"}),
		reservations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrostock",
			Name:      "reservations_resolved_total",
			Help:      "Reservas resueltas, por desenlace (released, used).",
		}, []string{"outcome"}),
		stockouts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "agrostock",
			Name:      "insufficient_stock_total",
			Help:      "Operaciones rechazadas por stock disponible insuficiente.",
		}),
	}
}

func (r *Recorder) MovementPosted(movementType string) {
	r.movements.WithLabelValues(movementType).Inc()
}

func (r *Recorder) ReservationResolved(outcome string) {
	r.reservations.WithLabelValues(outcome).Inc()
}

func (r *Recorder) InsufficientStock() {
	r.stockouts.Inc()
}
