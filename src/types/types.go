package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type AccommodationType string

const (
	ACCOMMODATION_HOSTEL           AccommodationType = "HOSTEL"
	ACCOMMODATION_HOTEL            AccommodationType = "HOTEL"
	ACCOMMODATION_SHARED_APARTMENT AccommodationType = "SHARED_APARTMENT"
	ACCOMMODATION_NONE             AccommodationType = "NONE"
)

type AllocationStatus string

const (
	ALLOCATION_PENDING AllocationStatus = "PENDING"
	ALLOCATION_ACTIVE  AllocationStatus = "ACTIVE"
	ALLOCATION_REVOKED AllocationStatus = "REVOKED"
)

type RegistrationStatus string

const (
	REGISTRATION_PENDING   RegistrationStatus = "PENDING"
	REGISTRATION_CONFIRMED RegistrationStatus = "CONFIRMED"
	REGISTRATION_CANCELLED RegistrationStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PAYMENT_PENDING    PaymentStatus = "PENDING"
	PAYMENT_SUCCESSFUL PaymentStatus = "SUCCESSFUL"
	PAYMENT_FAILED     PaymentStatus = "FAILED"
)

type EmploymentStatus string

const (
	EMPLOYED      EmploymentStatus = "EMPLOYED"
	SELF_EMPLOYED EmploymentStatus = "SELF_EMPLOYED"
	UNEMPLOYED    EmploymentStatus = "UNEMPLOYED"
)

type RoomAllocator string

const (
	ALLOCATOR_ALGORITHM RoomAllocator = "ALGORITHM"
	ALLOCATOR_ADMIN     RoomAllocator = "ADMIN"
)

type ParticipationMode string

const (
	PARTICIPATION_CAMPER   ParticipationMode = "CAMPER"
	PARTICIPATION_ATTENDEE ParticipationMode = "ATTENDEE"
	PARTICIPATION_ONLINE   ParticipationMode = "ONLINE"
)

type RegistrationInitiator string

const (
	INITIATOR_USER  RegistrationInitiator = "USER"
	INITIATOR_ADMIN RegistrationInitiator = "ADMIN"
)

type Gender string

const (
	GENDER_MALE   Gender = "MALE"
	GENDER_FEMALE Gender = "FEMALE"
	GENDER_NONE   Gender = "NONE"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateCategoryRequestBody struct {
	Name string `json:"name" binding:"required,accommodationkind"`
}

type CreateFacilityRequestBody struct {
	EventID               uint     `json:"event" binding:"required"`
	CategoryID            uint     `json:"category" binding:"required"`
	FacilityName          string   `json:"facility_name" binding:"required"`
	Available             bool     `json:"available"`
	TotalCapacity         uint     `json:"total_capacity" binding:"required"`
	EmployedUserPrice     *float64 `json:"employed_user_price,omitempty"`
	SelfEmployedUserPrice *float64 `json:"self_employed_user_price,omitempty"`
	UnemployedUserPrice   *float64 `json:"unemployed_user_price,omitempty"`
}

type CreateHostelRoomRequestBody struct {
	FacilityID        uint   `json:"facility" binding:"required"`
	RoomCode          string `json:"room_code" binding:"required"`
	Capacity          uint   `json:"capacity" binding:"required"`
	AdminReserved     bool   `json:"admin_reserved"`
	GenderRestriction string `json:"gender_restriction" binding:"omitempty,genderkind"`
	TeenRoom          bool   `json:"teen_room"`
}

type CreateHotelRoomTypeRequestBody struct {
	FacilityID        uint    `json:"facility" binding:"required"`
	RoomType          string  `json:"room_type" binding:"required"`
	Address           string  `json:"address,omitempty"`
	Description       string  `json:"description,omitempty"`
	Available         bool    `json:"available"`
	AdminReserved     bool    `json:"admin_reserved"`
	GenderRestriction string  `json:"gender_restriction" binding:"omitempty,genderkind"`
	Price             float64 `json:"price" binding:"required"`
	RoomsAvailable    uint    `json:"no_of_rooms_available" binding:"required"`
}

type InitiateAllocationRequestBody struct {
	EventID    uint `json:"event" binding:"required"`
	FacilityID uint `json:"facility" binding:"required"`
}

type InitiateHotelAllocationRequestBody struct {
	EventID    uint `json:"event" binding:"required"`
	FacilityID uint `json:"facility" binding:"required"`
	RoomTypeID uint `json:"room_type,omitempty"`
}

type CreateRegistrationRequestBody struct {
	EventID           uint   `json:"event" binding:"required"`
	ParticipationMode string `json:"participation_mode" binding:"required"`
	AccommodationType string `json:"accommodation_type,omitempty"`
}

// InitiatePaymentRequest is the payment coordinator's inbound contract,
// built by the reservation workflow once a unit has been secured.
type InitiatePaymentRequest struct {
	Amount    float64
	UserID    uint
	EventID   uint
	Reference string
	Narration string
}

type InitiatePaymentResponse struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

// Korapay charge initialization wire format.
type KorapayCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type KorapayChargeRequest struct {
	Amount            float64         `json:"amount"`
	Currency          string          `json:"currency"`
	Customer          KorapayCustomer `json:"customer"`
	MerchantBearsCost bool            `json:"merchant_bears_cost"`
	Narration         string          `json:"narration,omitempty"`
	NotificationURL   string          `json:"notification_url"`
	RedirectURL       string          `json:"redirect_url"`
	Reference         string          `json:"reference"`
}

type KorapayChargeResponseData struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

type KorapayChargeResponse struct {
	Status  bool                      `json:"status"`
	Message string                    `json:"message"`
	Data    KorapayChargeResponseData `json:"data"`
}

// PaymentStatusWebhook is the asynchronous charge outcome pushed by the
// provider. Status "success" activates the allocation; anything else revokes.
type PaymentStatusWebhook struct {
	Event string                   `json:"event"`
	Data  PaymentStatusWebhookData `json:"data"`
}

type PaymentStatusWebhookData struct {
	Reference        string  `json:"reference"`
	Currency         string  `json:"currency"`
	Amount           float64 `json:"amount"`
	Fee              float64 `json:"fee"`
	Status           string  `json:"status"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference string  `json:"payment_reference,omitempty"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
