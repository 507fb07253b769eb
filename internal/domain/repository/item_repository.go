package repository

import (
	"github.com/cmoralesv/AgroStock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRepository define el puerto de persistencia para ítems de inventario.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y es obligatorio al inicio de
// toda transacción mutante: serializa los accesos concurrentes al mismo ítem.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	List(includeDeleted bool, limit, offset int) ([]*entity.InventoryItem, error)
	// ListLowStock devuelve consumibles activos cuyo stock disponible está en o bajo MinStock.
	ListLowStock(limit, offset int) ([]*entity.InventoryItem, error)
	// Summary agrega conteos y valor total del inventario activo.
	Summary() (*StockSummary, error)
}

// StockSummary agregados del inventario activo para el tablero.
type StockSummary struct {
	TotalItems     int
	LowStockItems  int
	OutOfStock     int
	InventoryValue decimal.Decimal
}
