package models

import "ars/src/types"

// HostelRoom is a single dormitory room with per-bed occupancy.
type HostelRoom struct {
	ID                uint         `gorm:"primarykey" json:"room_id"`
	FacilityID        uint         `gorm:"index" json:"facility_id,omitempty"`
	RoomCode          string       `json:"room_code,omitempty"`
	Capacity          uint         `json:"capacity"`
	CapacityOccupied  uint         `json:"capacity_occupied"`
	AdminReserved     bool         `json:"admin_reserved"`
	GenderRestriction types.Gender `gorm:"default:'NONE'" json:"gender_restriction,omitempty"`
	TeenRoom          bool         `json:"teen_room"`

	Facility *Facility `gorm:"foreignKey:facility_id" json:"facility,omitempty"`

	types.Timestamps
}
