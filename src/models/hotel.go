package models

import "ars/src/types"

// HotelRoomType is a block of identical hotel rooms sold at one price.
// Occupancy counts whole rooms rather than beds.
type HotelRoomType struct {
	ID                uint         `gorm:"primarykey" json:"room_type_id"`
	FacilityID        uint         `gorm:"index" json:"facility_id,omitempty"`
	RoomType          string       `json:"room_type,omitempty"`
	Address           string       `json:"address,omitempty"`
	Description       string       `json:"description,omitempty"`
	Available         bool         `gorm:"default:true" json:"available"`
	AdminReserved     bool         `json:"admin_reserved"`
	GenderRestriction types.Gender `gorm:"default:'NONE'" json:"gender_restriction,omitempty"`
	Price             float64      `json:"price"`
	RoomsAvailable    uint         `json:"no_of_rooms_available"`
	RoomsOccupied     uint         `json:"no_of_rooms_occupied"`

	Facility *Facility `gorm:"foreignKey:facility_id" json:"facility,omitempty"`

	types.Timestamps
}
