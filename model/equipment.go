// model/equipment.go
package model

type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "AVAILABLE"
	EquipmentReserved  EquipmentStatus = "RESERVED"
	EquipmentLoaned    EquipmentStatus = "LOANED"
)

// Equipment is a single physical unit, not a pool of copies. A LOANED
// unit blocks every candidate range; RESERVED only blocks overlapping ones.
type Equipment struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Status   EquipmentStatus `json:"status"`
}
