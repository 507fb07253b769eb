package entity

import "time"

// Warehouse representa una bodega o depósito de la finca donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
