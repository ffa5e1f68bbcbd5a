package models

import "ars/src/types"

// PaymentRecord is the audit row for an outbound charge; the raw provider
// payload from the webhook is preserved verbatim.
type PaymentRecord struct {
	ID                  uint                `gorm:"primarykey" json:"id"`
	PaymentReference    string              `gorm:"uniqueIndex" json:"payment_reference"`
	UserID              uint                `json:"user_id,omitempty"`
	EventID             uint                `json:"event_id,omitempty"`
	Amount              float64             `json:"amount"`
	Currency            string              `gorm:"default:'NGN'" json:"currency,omitempty"`
	PaymentReason       string              `json:"payment_reason,omitempty"`
	Status              types.PaymentStatus `gorm:"default:'PENDING'" json:"status,omitempty"`
	ProviderRawResponse types.JSONB         `gorm:"type:jsonb" json:"provider_raw_response,omitempty"`

	types.Timestamps
}
