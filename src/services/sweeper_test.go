package services

import (
	"testing"
	"time"

	"ars/src/models"
	"ars/src/types"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedAllocation(t *testing.T, gdb *gorm.DB, id uint, kind types.AccommodationType, roomID uint, status types.AllocationStatus, age time.Duration) {
	t.Helper()
	err := gdb.Create(&models.Allocation{
		ID: id, EventID: 1, RegistrationID: id, Kind: kind,
		RoomID: roomID, FacilityID: 1,
		PaymentReference: "PAY-" + time.Now().Format("150405") + "-" + string(rune('A'+id)) + "0000000",
		Status:           status,
		AllocatedAt:      time.Now().Add(-age),
	}).Error
	if err != nil {
		t.Fatalf("seed allocation: %v", err)
	}
}

func TestRevokeExpired(t *testing.T) {
	gdb := newTestDB(t)
	seedHostelWorld(t, gdb, 6)
	for i := uint(1); i <= 4; i++ {
		seedRegistrant(t, gdb, i, types.EMPLOYED)
	}

	// two stale pending, one fresh pending, one stale but already active
	seedAllocation(t, gdb, 1, types.ACCOMMODATION_HOSTEL, 1, types.ALLOCATION_PENDING, 2*time.Hour)
	seedAllocation(t, gdb, 2, types.ACCOMMODATION_HOSTEL, 1, types.ALLOCATION_PENDING, 3*time.Hour)
	seedAllocation(t, gdb, 3, types.ACCOMMODATION_HOSTEL, 1, types.ALLOCATION_PENDING, time.Minute)
	seedAllocation(t, gdb, 4, types.ACCOMMODATION_HOSTEL, 1, types.ALLOCATION_ACTIVE, 2*time.Hour)
	assert.NoError(t, gdb.Model(&models.HostelRoom{}).Where("id = ?", 1).Update("capacity_occupied", 4).Error)
	assert.NoError(t, gdb.Model(&models.Facility{}).Where("id = ?", 1).Update("capacity_occupied", 4).Error)
	assert.NoError(t, gdb.Model(&models.Registration{}).Where("reg_id IN ?", []uint{1, 2, 3}).Update("accommodation_type", types.ACCOMMODATION_HOSTEL).Error)

	sweeper := NewExpirySweeper(gdb, time.Hour)
	revoked, err := sweeper.RevokeExpired(types.ACCOMMODATION_HOSTEL)
	assert.NoError(t, err)
	assert.Equal(t, 2, revoked)

	var statuses []types.AllocationStatus
	assert.NoError(t, gdb.Model(&models.Allocation{}).Order("id asc").Pluck("status", &statuses).Error)
	assert.Equal(t, []types.AllocationStatus{
		types.ALLOCATION_REVOKED,
		types.ALLOCATION_REVOKED,
		types.ALLOCATION_PENDING,
		types.ALLOCATION_ACTIVE,
	}, statuses)

	// grouped decrement released exactly the two reclaimed beds
	var room models.HostelRoom
	assert.NoError(t, gdb.First(&room, 1).Error)
	assert.Equal(t, uint(2), room.CapacityOccupied)
	var facility models.Facility
	assert.NoError(t, gdb.First(&facility, 1).Error)
	assert.Equal(t, uint(2), facility.CapacityOccupied)

	// reclaimed registrations lose their provisional kind, the fresh one keeps it
	var regKinds []types.AccommodationType
	assert.NoError(t, gdb.Model(&models.Registration{}).Where("reg_id IN ?", []uint{1, 2, 3}).Order("reg_id asc").Pluck("accommodation_type", &regKinds).Error)
	assert.Equal(t, []types.AccommodationType{
		types.ACCOMMODATION_NONE,
		types.ACCOMMODATION_NONE,
		types.ACCOMMODATION_HOSTEL,
	}, regKinds)

	// a second sweep finds nothing left to reclaim
	revoked, err = sweeper.RevokeExpired(types.ACCOMMODATION_HOSTEL)
	assert.NoError(t, err)
	assert.Equal(t, 0, revoked)
}

func TestRevokeExpiredScopedToKind(t *testing.T) {
	gdb := newTestDB(t)
	seedHostelWorld(t, gdb, 4)
	seedRegistrant(t, gdb, 1, types.EMPLOYED)
	seedRegistrant(t, gdb, 2, types.EMPLOYED)
	assert.NoError(t, gdb.Create(&models.HotelRoomType{
		ID: 9, FacilityID: 1, RoomType: "Standard", Price: 100, RoomsAvailable: 3, RoomsOccupied: 1, Available: true,
	}).Error)

	seedAllocation(t, gdb, 1, types.ACCOMMODATION_HOSTEL, 1, types.ALLOCATION_PENDING, 2*time.Hour)
	seedAllocation(t, gdb, 2, types.ACCOMMODATION_HOTEL, 9, types.ALLOCATION_PENDING, 2*time.Hour)
	assert.NoError(t, gdb.Model(&models.HostelRoom{}).Where("id = ?", 1).Update("capacity_occupied", 1).Error)
	assert.NoError(t, gdb.Model(&models.Facility{}).Where("id = ?", 1).Update("capacity_occupied", 2).Error)

	sweeper := NewExpirySweeper(gdb, time.Hour)
	revoked, err := sweeper.RevokeExpired(types.ACCOMMODATION_HOSTEL)
	assert.NoError(t, err)
	assert.Equal(t, 1, revoked)

	// the hotel allocation is untouched until its own kind is swept
	var hotelAllocation models.Allocation
	assert.NoError(t, gdb.First(&hotelAllocation, 2).Error)
	assert.Equal(t, types.ALLOCATION_PENDING, hotelAllocation.Status)

	revoked, err = sweeper.RevokeExpired(types.ACCOMMODATION_HOTEL)
	assert.NoError(t, err)
	assert.Equal(t, 1, revoked)

	var roomType models.HotelRoomType
	assert.NoError(t, gdb.First(&roomType, 9).Error)
	assert.Equal(t, uint(0), roomType.RoomsOccupied)
}
