package models

import "ars/src/types"

type User struct {
	ID               uint                   `gorm:"primarykey" json:"id"`
	UID              string                 `json:"uid,omitempty"`
	Email            string                 `gorm:"uniqueIndex" json:"email,omitempty"`
	FirstName        string                 `json:"first_name,omitempty"`
	LastName         string                 `json:"last_name,omitempty"`
	Gender           types.Gender           `json:"gender,omitempty"`
	EmploymentStatus types.EmploymentStatus `gorm:"default:'EMPLOYED'" json:"employment_status,omitempty"`
	Role             string                 `json:"role,omitempty"`

	Registrations []*Registration `json:"registrations,omitempty"`

	types.Timestamps
}
