package services

import (
	"log"
	"time"

	"ars/src/config"
	"ars/src/inventory"
	"ars/src/lib"
	"ars/src/models"
	"ars/src/types"

	"gorm.io/gorm"
)

// ExpirySweeper reclaims PENDING allocations whose webhook never arrived.
// It revokes each expired allocation individually but releases occupancy in
// grouped decrements, one update per unit and per facility.
type ExpirySweeper struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewExpirySweeper(db *gorm.DB, timeout time.Duration) *ExpirySweeper {
	return &ExpirySweeper{db: db, timeout: timeout}
}

// Start registers the sweep as a recurring job on the shared scheduler.
func (s *ExpirySweeper) Start() error {
	id, err := lib.CreateCronJob(s.Run, config.SweepInterval())
	if err != nil {
		return err
	}
	log.Printf("Expiry sweeper scheduled as job %s\n", *id)
	return nil
}

func (s *ExpirySweeper) Run() {
	for _, kind := range []types.AccommodationType{types.ACCOMMODATION_HOSTEL, types.ACCOMMODATION_HOTEL} {
		revoked, err := s.RevokeExpired(kind)
		if err != nil {
			log.Printf("Expiry sweep for %s failed: %s\n", kind, err.Error())
			continue
		}
		if revoked > 0 {
			log.Printf("Expiry sweep revoked %d %s allocations\n", revoked, kind)
		}
	}
}

// RevokeExpired sweeps one kind. Each allocation transition is guarded on
// status = PENDING so a webhook landing mid-sweep keeps its allocation and
// its occupancy.
func (s *ExpirySweeper) RevokeExpired(kind types.AccommodationType) (int, error) {
	registry, err := inventory.ForKind(kind)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-s.timeout)
	revoked := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var expired []models.Allocation
		err := tx.
			Where("kind = ? AND status = ? AND allocated_at < ?", kind, types.ALLOCATION_PENDING, cutoff).
			Find(&expired).
			Error
		if err != nil {
			return err
		}

		unitCounts := map[uint]uint{}
		facilityCounts := map[uint]uint{}
		var regIDs []uint
		for _, allocation := range expired {
			res := tx.
				Model(&models.Allocation{}).
				Where("id = ? AND status = ?", allocation.ID, types.ALLOCATION_PENDING).
				Update("status", types.ALLOCATION_REVOKED)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			revoked++
			unitCounts[allocation.RoomID]++
			facilityCounts[allocation.FacilityID]++
			regIDs = append(regIDs, allocation.RegistrationID)
		}

		for unitID, count := range unitCounts {
			if err := registry.DecrementOccupancy(tx, unitID, count); err != nil {
				return err
			}
		}
		for facilityID, count := range facilityCounts {
			if err := inventory.AdjustFacilityOccupancy(tx, facilityID, -int(count)); err != nil {
				return err
			}
		}
		if len(regIDs) > 0 {
			err := tx.
				Model(&models.Registration{}).
				Where("reg_id IN ? AND accommodation_assigned = ?", regIDs, false).
				Update("accommodation_type", types.ACCOMMODATION_NONE).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		revoked = 0
	}
	return revoked, err
}
