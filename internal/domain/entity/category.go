package entity

import "time"

// Category agrupa ítems de inventario (fertilizantes, agroquímicos, herramientas...).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
