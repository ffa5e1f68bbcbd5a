package models

import "ars/src/types"

type Event struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `gorm:"default:'ACTIVE'" json:"status,omitempty"`

	Facilities    []*Facility     `json:"facilities,omitempty"`
	Registrations []*Registration `json:"registrations,omitempty"`

	types.Timestamps
}
