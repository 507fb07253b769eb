package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/cmoralesv/AgroStock-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación del puerto ReservationRepository sobre PostgreSQL.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `
	id, item_id, quantity, reason, status, actor_id, activity_id, reserved_at, resolved_at`

// Create persiste una reserva ACTIVE.
func (r *ReservationRepo) Create(res *entity.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reservations (id, item_id, quantity, reason, status, actor_id, activity_id, reserved_at, resolved_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.ItemID, res.Quantity, res.Reason, res.Status,
		res.ActorID, res.ActivityID, res.ReservedAt, res.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID, &res.ItemID, &res.Quantity, &res.Reason, &res.Status,
		&res.ActorID, &res.ActivityID, &res.ReservedAt, &res.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByID obtiene una reserva por ID.
func (r *ReservationRepo) GetByID(id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// GetForUpdate obtiene la reserva y bloquea la fila (SELECT FOR UPDATE).
func (r *ReservationRepo) GetForUpdate(id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	res, err := scanReservation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation for update: %w", err)
	}
	return res, nil
}

// UpdateStatus persiste la transición a RELEASED o USED.
func (r *ReservationRepo) UpdateStatus(res *entity.Reservation) error {
	query := `UPDATE reservations SET status = $2, resolved_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, res.ID, res.Status, res.ResolvedAt)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	return nil
}

// List lista reservas, más recientes primero.
func (r *ReservationRepo) List(limit, offset int) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations ORDER BY reserved_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// ListByItem lista las reservas de un ítem, más recientes primero.
func (r *ReservationRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations WHERE item_id = $1
		ORDER BY reserved_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reservations by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}
