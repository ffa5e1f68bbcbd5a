package models

import "ars/src/types"

// Registration binds a user to an event. Unique per (user, event); the
// reservation workflow patches accommodation fields as the allocation
// progresses.
type Registration struct {
	RegID                 uint                        `gorm:"primarykey" json:"reg_id"`
	UserID                uint                        `gorm:"uniqueIndex:idx_registration_user_event" json:"user_id,omitempty"`
	EventID               uint                        `gorm:"uniqueIndex:idx_registration_user_event" json:"event_id,omitempty"`
	ParticipationMode     types.ParticipationMode     `json:"participation_mode,omitempty"`
	AccommodationType     types.AccommodationType     `gorm:"default:'NONE'" json:"accommodation_type,omitempty"`
	Status                types.RegistrationStatus    `gorm:"default:'PENDING'" json:"status,omitempty"`
	AccommodationAssigned bool                        `json:"accommodation_assigned"`
	AccommodationDetails  types.JSONB                 `gorm:"type:jsonb" json:"accommodation_details,omitempty"`
	Initiator             types.RegistrationInitiator `gorm:"default:'USER'" json:"initiator,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
