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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL.
// La tabla es append-only: este adaptador no emite UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `
	id, item_id, type, usage_qty, packaging_qty, unit_cost_usage, total_cost,
	resulting_inventory_value, source_warehouse_id, dest_warehouse_id,
	activity_id, actor_id, note, created_at`

// Create persiste una entrada del libro.
func (r *MovementRepo) Create(entry *entity.MovementEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (
			id, item_id, type, usage_qty, packaging_qty, unit_cost_usage, total_cost,
			resulting_inventory_value, source_warehouse_id, dest_warehouse_id,
			activity_id, actor_id, note, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	actorID := (*string)(nil)
	if entry.ActorID != "" {
		actorID = &entry.ActorID
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ItemID, string(entry.Type), entry.UsageQty, entry.PackagingQty,
		entry.UnitCostUsage, entry.TotalCost, entry.ResultingInventoryValue,
		entry.SourceWarehouseID, entry.DestWarehouseID,
		entry.ActivityID, actorID, entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.MovementEntry, error) {
	var m entity.MovementEntry
	var mtype string
	var actorID *string
	err := row.Scan(
		&m.ID, &m.ItemID, &mtype, &m.UsageQty, &m.PackagingQty,
		&m.UnitCostUsage, &m.TotalCost, &m.ResultingInventoryValue,
		&m.SourceWarehouseID, &m.DestWarehouseID,
		&m.ActivityID, &actorID, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(mtype)
	if actorID != nil {
		m.ActorID = *actorID
	}
	return &m, nil
}

// GetByID obtiene una entrada por ID.
func (r *MovementRepo) GetByID(id string) (*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByItem lista las entradas de un ítem, más recientes primero.
func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements WHERE item_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementEntry
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// List lista entradas del libro sin filtrar, más recientes primero.
func (r *MovementRepo) List(limit, offset int) ([]*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementEntry
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
