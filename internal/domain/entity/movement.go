package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType es la enumeración cerrada de tipos de movimiento del libro de inventario.
// Valores no reconocidos se rechazan en la frontera (ErrInvalidInput), nunca se ignoran.
type MovementType string

const (
	MovementTypeRegister       MovementType = "REGISTER"        // alta con stock inicial
	MovementTypeReceipt        MovementType = "RECEIPT"         // entrada por compra
	MovementTypeConsume        MovementType = "CONSUME"         // consumo en actividad
	MovementTypeIssue          MovementType = "ISSUE"           // salida manual
	MovementTypeReservationUse MovementType = "RESERVATION_USE" // consumo de una reserva
	MovementTypeAdjustment     MovementType = "ADJUSTMENT"      // ajuste (cantidad con signo)
	MovementTypeTransfer       MovementType = "TRANSFER"        // cambio de bodega, stock intacto
	MovementTypeDelete         MovementType = "DELETE"          // eliminación lógica
	MovementTypeRestore        MovementType = "RESTORE"         // reversa de la eliminación
)

// IsValid verifica que el tipo pertenezca a la enumeración.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeRegister, MovementTypeReceipt, MovementTypeConsume,
		MovementTypeIssue, MovementTypeReservationUse, MovementTypeAdjustment,
		MovementTypeTransfer, MovementTypeDelete, MovementTypeRestore:
		return true
	default:
		return false
	}
}

// Increases indica si el tipo suma stock en unidad de uso.
func (t MovementType) Increases() bool {
	return t == MovementTypeRegister || t == MovementTypeReceipt
}

// Decreases indica si el tipo resta stock en unidad de uso.
func (t MovementType) Decreases() bool {
	return t == MovementTypeConsume || t == MovementTypeIssue || t == MovementTypeReservationUse
}

func (t MovementType) String() string { return string(t) }

// MovementEntry es un hecho inmutable del libro: "el stock del ítem X cambió en Y,
// en el momento T, por la razón Z". Las entradas nunca se actualizan ni se borran;
// el stock actual de un ítem siempre es reproducible re-aplicando sus entradas.
type MovementEntry struct {
	ID            string
	ItemID        string
	Type          MovementType
	UsageQty      decimal.Decimal // cantidad en unidad de uso (signo según tipo)
	PackagingQty  decimal.Decimal // cantidad en empaques (informativa)
	UnitCostUsage decimal.Decimal // costo unitario vigente al momento de la entrada
	TotalCost     decimal.Decimal

	// Valor de inventario del ítem después de aplicar esta entrada (foto de auditoría).
	ResultingInventoryValue decimal.Decimal

	SourceWarehouseID string // solo TRANSFER
	DestWarehouseID   string // solo TRANSFER
	ActivityID        string // referencia opcional a la actividad que consumió
	ActorID           string
	Note              string
	CreatedAt         time.Time
}
