package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"ars/src/common"
	"ars/src/inventory"
	"ars/src/models"
	"ars/src/types"
	"ars/src/utils"

	"gorm.io/gorm"
)

// PaymentInitiator is the slice of billing the reservation workflow needs.
type PaymentInitiator interface {
	InitializePayment(ctx context.Context, req *types.InitiatePaymentRequest, user *models.User) (*types.InitiatePaymentResponse, error)
}

type InitiateAllocationParams struct {
	UserID     uint
	EventID    uint
	FacilityID uint
	// UnitID pins the reservation to one specific unit (a hotel room type
	// chosen by the registrant). Zero lets the algorithm pick.
	UnitID uint
}

type InitiateAllocationResult struct {
	AllocationID uint                    `json:"allocation_id"`
	Kind         types.AccommodationType `json:"kind"`
	Reference    string                  `json:"reference"`
	CheckoutURL  string                  `json:"checkout_url"`
}

// AllocationService runs the reservation workflow for one accommodation
// kind: reserve a slot and occupancy inside a transaction, then initiate the
// charge, compensating the reservation if the gateway refuses.
type AllocationService struct {
	db       *gorm.DB
	registry inventory.Registry
	payments PaymentInitiator
	dir      *Directory
}

func NewAllocationService(db *gorm.DB, registry inventory.Registry, payments PaymentInitiator) *AllocationService {
	return &AllocationService{
		db:       db,
		registry: registry,
		payments: payments,
		dir:      NewDirectory(db),
	}
}

// facilityLocks serializes reservation transactions per facility on engines
// without SELECT ... FOR UPDATE. Postgres deployments never contend here
// beyond the map lookup.
var facilityLocks sync.Map

func lockFacility(db *gorm.DB, facilityID uint) func() {
	if db.Dialector.Name() == "postgres" {
		return func() {}
	}
	v, _ := facilityLocks.LoadOrStore(facilityID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (a *AllocationService) InitiateAllocation(ctx context.Context, params *InitiateAllocationParams) (*InitiateAllocationResult, error) {
	user, err := a.dir.FindUser(params.UserID)
	if err != nil {
		return nil, err
	}
	event, err := a.dir.FindEvent(params.EventID)
	if err != nil {
		return nil, err
	}
	reg, err := a.dir.FindRegistration(params.UserID, params.EventID)
	if err != nil {
		return nil, err
	}
	if reg.Status == types.REGISTRATION_CANCELLED || reg.ParticipationMode == types.PARTICIPATION_ONLINE {
		return nil, fmt.Errorf("registration %d is not eligible for accommodation: %w", reg.RegID, common.ErrPreconditionFailed)
	}
	if reg.AccommodationAssigned {
		return nil, fmt.Errorf("registration %d: %w", reg.RegID, common.ErrDuplicateRequest)
	}
	var liveAllocations int64
	err = a.db.
		Model(&models.Allocation{}).
		Where("registration_id = ? AND status IN ?", reg.RegID, []types.AllocationStatus{types.ALLOCATION_PENDING, types.ALLOCATION_ACTIVE}).
		Count(&liveAllocations).
		Error
	if err != nil {
		return nil, err
	}
	if liveAllocations > 0 {
		return nil, fmt.Errorf("registration %d has a live allocation: %w", reg.RegID, common.ErrDuplicateRequest)
	}

	facility, err := a.dir.FindFacility(params.FacilityID)
	if err != nil {
		return nil, err
	}
	if facility.EventID != params.EventID {
		return nil, fmt.Errorf("facility %d does not belong to event %d: %w", facility.ID, params.EventID, common.ErrValidation)
	}
	if !facility.Available {
		return nil, fmt.Errorf("facility %d is closed: %w", facility.ID, common.ErrPreconditionFailed)
	}
	if facility.Category == nil || facility.Category.Name != a.registry.Kind() {
		return nil, fmt.Errorf("facility %d is not a %s facility: %w", facility.ID, a.registry.Kind(), common.ErrValidation)
	}

	unlock := lockFacility(a.db, facility.ID)
	defer unlock()

	var allocation models.Allocation
	var amount float64
	err = a.db.Transaction(func(tx *gorm.DB) error {
		unit, err := a.registry.SelectCandidateUnit(tx, facility.ID, params.UnitID)
		if err != nil {
			return err
		}
		amount, err = unit.UnitPrice(facility, user.EmploymentStatus)
		if err != nil {
			return err
		}
		allocation = models.Allocation{
			EventID:          params.EventID,
			RegistrationID:   reg.RegID,
			Kind:             a.registry.Kind(),
			RoomID:           unit.UnitID(),
			FacilityID:       facility.ID,
			PaymentReference: utils.GeneratePaymentReference(),
			Allocator:        types.ALLOCATOR_ALGORITHM,
			Status:           types.ALLOCATION_PENDING,
			AllocatedAt:      time.Now(),
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return err
		}
		if err := a.registry.IncrementOccupancy(tx, unit.UnitID()); err != nil {
			return err
		}
		if err := inventory.AdjustFacilityOccupancy(tx, facility.ID, 1); err != nil {
			return err
		}
		return tx.
			Model(&models.Registration{}).
			Where("reg_id = ?", reg.RegID).
			Updates(map[string]any{
				"accommodation_type": a.registry.Kind(),
				"status":             types.REGISTRATION_PENDING,
			}).
			Error
	})
	if err != nil {
		return nil, err
	}

	payment, err := a.payments.InitializePayment(ctx, &types.InitiatePaymentRequest{
		Amount:    amount,
		UserID:    user.ID,
		EventID:   params.EventID,
		Reference: allocation.PaymentReference,
		Narration: fmt.Sprintf("%s accommodation for %s", a.registry.Kind(), event.Name),
	}, user)
	if err != nil {
		a.compensate(&allocation)
		return nil, err
	}

	return &InitiateAllocationResult{
		AllocationID: allocation.ID,
		Kind:         allocation.Kind,
		Reference:    allocation.PaymentReference,
		CheckoutURL:  payment.CheckoutURL,
	}, nil
}

// compensate rolls the committed reservation back after the gateway refused
// to open a charge. Guarded on PENDING so a webhook racing in first wins.
func (a *AllocationService) compensate(allocation *models.Allocation) {
	err := a.db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Allocation{}).
			Where("id = ? AND status = ?", allocation.ID, types.ALLOCATION_PENDING).
			Update("status", types.ALLOCATION_REVOKED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return releaseAllocation(tx, allocation)
	})
	if err != nil {
		log.Printf("Compensation failed for allocation %d (%s): %s\n", allocation.ID, allocation.PaymentReference, err.Error())
	}
}
