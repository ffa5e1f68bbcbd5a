package models

import (
	"time"

	"ars/src/types"
)

// Allocation binds a registration to a reservable unit pending payment
// confirmation. Kind selects which unit table RoomID points into. A failed
// or expired attempt never reuses a row; every new attempt inserts a new
// PENDING allocation with a fresh payment reference.
type Allocation struct {
	ID               uint                    `gorm:"primarykey" json:"id"`
	EventID          uint                    `gorm:"index" json:"event_id,omitempty"`
	RegistrationID   uint                    `gorm:"index" json:"registration_id,omitempty"`
	Kind             types.AccommodationType `json:"kind,omitempty"`
	RoomID           uint                    `json:"room_id,omitempty"`
	FacilityID       uint                    `json:"facility_id,omitempty"`
	PaymentReference string                  `gorm:"uniqueIndex" json:"payment_reference,omitempty"`
	Allocator        types.RoomAllocator     `gorm:"default:'ALGORITHM'" json:"allocator,omitempty"`
	Status           types.AllocationStatus  `gorm:"default:'PENDING'" json:"status,omitempty"`
	AllocatedAt      time.Time               `json:"allocated_at,omitempty"`

	Registration *Registration `gorm:"foreignKey:registration_id" json:"registration,omitempty"`

	types.Timestamps
}
