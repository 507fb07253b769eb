package entity

import "time"

// Supplier representa un proveedor de insumos o maquinaria.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
