package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Location string `json:"location"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Location *string `json:"location"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Contact *string `json:"contact"`
	Phone   *string `json:"phone"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
