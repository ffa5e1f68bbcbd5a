package services

import (
	"errors"
	"fmt"

	"ars/src/common"
	"ars/src/models"

	"gorm.io/gorm"
)

// Directory is the read side shared by the reservation and billing flows:
// users, events, facilities and registrations looked up by id, with misses
// normalized to common.ErrNotFound.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) FindUser(id uint) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (d *Directory) FindEvent(id uint) (*models.Event, error) {
	var event models.Event
	if err := d.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	return &event, nil
}

func (d *Directory) FindFacility(id uint) (*models.Facility, error) {
	var facility models.Facility
	if err := d.db.Preload("Category").First(&facility, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("facility %d: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	return &facility, nil
}

func (d *Directory) FindRegistration(userID, eventID uint) (*models.Registration, error) {
	var reg models.Registration
	err := d.db.
		Where(&models.Registration{UserID: userID, EventID: eventID}).
		First(&reg).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registration for user %d on event %d: %w", userID, eventID, common.ErrNotFound)
		}
		return nil, err
	}
	return &reg, nil
}
