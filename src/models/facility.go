package models

import "ars/src/types"

type AccommodationCategory struct {
	ID   uint                    `gorm:"primarykey" json:"id"`
	Name types.AccommodationType `gorm:"uniqueIndex" json:"name"`

	Facilities []*Facility `gorm:"foreignKey:CategoryID" json:"facilities,omitempty"`

	types.Timestamps
}

// Facility is a bookable accommodation offering within an event. The
// occupancy counter is a denormalized aggregate over the facility's units
// and is mutated in the same transaction as every unit counter change.
type Facility struct {
	ID               uint   `gorm:"primarykey" json:"facility_id"`
	EventID          uint   `json:"event_id,omitempty"`
	CategoryID       uint   `json:"category_id,omitempty"`
	FacilityName     string `json:"facility_name,omitempty"`
	Slug             string `json:"slug,omitempty"`
	Available        bool   `gorm:"default:true" json:"available"`
	TotalCapacity    uint   `json:"total_capacity"`
	CapacityOccupied uint   `json:"capacity_occupied"`

	// Tier prices apply to hostel facilities; nil means the tier has not
	// been configured and allocation must refuse to price it.
	EmployedUserPrice     *float64 `json:"employed_user_price,omitempty"`
	SelfEmployedUserPrice *float64 `json:"self_employed_user_price,omitempty"`
	UnemployedUserPrice   *float64 `json:"unemployed_user_price,omitempty"`

	Category *AccommodationCategory `gorm:"foreignKey:category_id" json:"category,omitempty"`
	Event    *Event                 `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
