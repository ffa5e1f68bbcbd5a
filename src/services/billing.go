package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"ars/src/common"
	"ars/src/config"
	"ars/src/inventory"
	"ars/src/lib"
	"ars/src/models"
	"ars/src/types"
	"ars/src/utils"

	"gorm.io/gorm"
)

// BillingService coordinates outbound charges and reconciles the provider's
// asynchronous status webhooks against pending allocations.
type BillingService struct {
	db       *gorm.DB
	gateway  lib.PaymentGateway
	sendMail func(*lib.SendMailInput) error
}

func NewBillingService(db *gorm.DB, gateway lib.PaymentGateway) *BillingService {
	return &BillingService{db: db, gateway: gateway, sendMail: lib.SendMail}
}

// NewBillingServiceWithMailer injects the mail sender; tests use it to keep
// confirmation emails off the wire.
func NewBillingServiceWithMailer(db *gorm.DB, gateway lib.PaymentGateway, sendMail func(*lib.SendMailInput) error) *BillingService {
	return &BillingService{db: db, gateway: gateway, sendMail: sendMail}
}

// InitializePayment asks the provider for a checkout session and records the
// charge. The caller already holds a committed PENDING allocation carrying
// req.Reference; a gateway failure here is the caller's cue to compensate.
func (b *BillingService) InitializePayment(ctx context.Context, req *types.InitiatePaymentRequest, user *models.User) (*types.InitiatePaymentResponse, error) {
	chargeReq := &types.KorapayChargeRequest{
		Amount:   req.Amount,
		Currency: config.DEFAULT_CURRENCY,
		Customer: types.KorapayCustomer{
			Email: user.Email,
			Name:  utils.FullName(user.FirstName, user.LastName),
		},
		MerchantBearsCost: false,
		Narration:         req.Narration,
		NotificationURL:   config.BillingNotificationURL(),
		RedirectURL:       config.BillingRedirectURL(),
		Reference:         req.Reference,
	}
	chargeRes, err := b.gateway.InitializeCharge(ctx, chargeReq)
	if err != nil {
		return nil, err
	}

	record := models.PaymentRecord{
		PaymentReference: req.Reference,
		UserID:           req.UserID,
		EventID:          req.EventID,
		Amount:           req.Amount,
		Currency:         config.DEFAULT_CURRENCY,
		PaymentReason:    req.Narration,
		Status:           types.PAYMENT_PENDING,
	}
	if err := b.db.Create(&record).Error; err != nil {
		return nil, err
	}

	lib.CacheCheckoutURL(ctx, req.Reference, chargeRes.Data.CheckoutURL, config.AllocationTimeout())

	return &types.InitiatePaymentResponse{
		Reference:   chargeRes.Data.Reference,
		CheckoutURL: chargeRes.Data.CheckoutURL,
	}, nil
}

// VerifyPayment reconciles one webhook delivery. Every state transition is
// guarded on the allocation still being PENDING, so replayed deliveries and
// out-of-order arrivals settle as no-ops.
func (b *BillingService) VerifyPayment(ctx context.Context, webhook *types.PaymentStatusWebhook) error {
	reference := webhook.Data.Reference
	var allocation models.Allocation
	if err := b.db.Where(&models.Allocation{PaymentReference: reference}).First(&allocation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("allocation for reference %s: %w", reference, common.ErrNotFound)
		}
		return err
	}

	succeeded := strings.EqualFold(webhook.Data.Status, "success")
	var confirmedUserID uint

	err := b.db.Transaction(func(tx *gorm.DB) error {
		if succeeded {
			res := tx.
				Model(&models.Allocation{}).
				Where("id = ? AND status = ?", allocation.ID, types.ALLOCATION_PENDING).
				Update("status", types.ALLOCATION_ACTIVE)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				userID, err := b.confirmRegistration(tx, &allocation, webhook.Data.Amount)
				if err != nil {
					return err
				}
				confirmedUserID = userID
			}
		} else {
			res := tx.
				Model(&models.Allocation{}).
				Where("id = ? AND status = ?", allocation.ID, types.ALLOCATION_PENDING).
				Update("status", types.ALLOCATION_REVOKED)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				if err := releaseAllocation(tx, &allocation); err != nil {
					return err
				}
			}
		}
		return b.recordOutcome(tx, webhook, succeeded)
	})
	if err != nil {
		return err
	}

	if confirmedUserID > 0 {
		go b.notifyConfirmation(confirmedUserID, &allocation)
	}
	return nil
}

// confirmRegistration marks the registration secured and snapshots the unit
// the registrant paid for.
func (b *BillingService) confirmRegistration(tx *gorm.DB, allocation *models.Allocation, amount float64) (uint, error) {
	var reg models.Registration
	if err := tx.First(&reg, allocation.RegistrationID).Error; err != nil {
		return 0, err
	}
	registry, err := inventory.ForKind(allocation.Kind)
	if err != nil {
		return 0, err
	}
	unit, err := registry.FindUnit(tx, allocation.RoomID)
	if err != nil {
		return 0, err
	}
	var facility models.Facility
	if err := tx.First(&facility, allocation.FacilityID).Error; err != nil {
		return 0, err
	}

	details := types.JSONB{
		"kind":              string(allocation.Kind),
		"facility":          facility.FacilityName,
		"unit":              unit.UnitLabel(),
		"payment_reference": allocation.PaymentReference,
		"amount_paid":       amount,
	}
	err = tx.
		Model(&models.Registration{}).
		Where("reg_id = ?", reg.RegID).
		Updates(map[string]any{
			"status":                 types.REGISTRATION_CONFIRMED,
			"accommodation_assigned": true,
			"accommodation_type":     allocation.Kind,
			"accommodation_details":  details,
		}).
		Error
	if err != nil {
		return 0, err
	}
	return reg.UserID, nil
}

// releaseAllocation undoes the occupancy a freshly revoked allocation held
// and clears the registration's provisional accommodation kind.
func releaseAllocation(tx *gorm.DB, allocation *models.Allocation) error {
	registry, err := inventory.ForKind(allocation.Kind)
	if err != nil {
		return err
	}
	if err := registry.DecrementOccupancy(tx, allocation.RoomID, 1); err != nil {
		return err
	}
	if err := inventory.AdjustFacilityOccupancy(tx, allocation.FacilityID, -1); err != nil {
		return err
	}
	return tx.
		Model(&models.Registration{}).
		Where("reg_id = ? AND accommodation_assigned = ?", allocation.RegistrationID, false).
		Update("accommodation_type", types.ACCOMMODATION_NONE).
		Error
}

// recordOutcome preserves the provider payload on the payment record even
// when the allocation transition was a replayed no-op.
func (b *BillingService) recordOutcome(tx *gorm.DB, webhook *types.PaymentStatusWebhook, succeeded bool) error {
	status := types.PAYMENT_FAILED
	if succeeded {
		status = types.PAYMENT_SUCCESSFUL
	}
	raw, _ := json.Marshal(webhook)
	var payload types.JSONB
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload = types.JSONB{"event": webhook.Event}
	}
	res := tx.
		Model(&models.PaymentRecord{}).
		Where("payment_reference = ? AND status = ?", webhook.Data.Reference, types.PAYMENT_PENDING).
		Updates(map[string]any{
			"status":                status,
			"provider_raw_response": payload,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// Already settled or never recorded; keep the latest payload either way.
	res = tx.
		Model(&models.PaymentRecord{}).
		Where("payment_reference = ?", webhook.Data.Reference).
		Update("provider_raw_response", payload)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("No payment record found for reference %s\n", webhook.Data.Reference)
	}
	return nil
}

func (b *BillingService) notifyConfirmation(userID uint, allocation *models.Allocation) {
	var user models.User
	if err := b.db.First(&user, userID).Error; err != nil {
		log.Printf("Could not load user %d for confirmation mail: %s\n", userID, err.Error())
		return
	}
	input := &lib.SendMailInput{
		From:     "noreply@reservations.local",
		FromName: "Reservations",
		To:       []string{user.Email},
		Subject:  "Accommodation secured",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour accommodation has been secured. Payment reference: %s.\n",
			utils.FullName(user.FirstName, user.LastName),
			allocation.PaymentReference,
		),
	}
	if err := b.sendMail(input); err != nil {
		log.Printf("Failed to send confirmation mail for %s: %s\n", allocation.PaymentReference, err.Error())
	}
}
