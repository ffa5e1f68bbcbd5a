package inventory

import (
	"fmt"
	"testing"

	"ars/src/common"
	"ars/src/models"
	"ars/src/types"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(
		&models.Facility{},
		&models.HostelRoom{},
		&models.HotelRoomType{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestHostelSelectCandidateUnitOrdering(t *testing.T) {
	gdb := newTestDB(t)
	rooms := []*models.HostelRoom{
		{ID: 1, FacilityID: 1, RoomCode: "A1", Capacity: 4, CapacityOccupied: 3},
		{ID: 2, FacilityID: 1, RoomCode: "A2", Capacity: 4, CapacityOccupied: 1},
		{ID: 3, FacilityID: 1, RoomCode: "A3", Capacity: 4, CapacityOccupied: 4},
		{ID: 4, FacilityID: 1, RoomCode: "A4", Capacity: 4, CapacityOccupied: 1},
		{ID: 5, FacilityID: 2, RoomCode: "B1", Capacity: 4, CapacityOccupied: 0},
	}
	assert.NoError(t, gdb.Create(&rooms).Error)

	reg := NewHostelRegistry()
	unit, err := reg.SelectCandidateUnit(gdb, 1, 0)
	assert.NoError(t, err)
	// lowest occupancy wins; id breaks the tie between A2 and A4
	assert.Equal(t, uint(2), unit.UnitID())
	assert.Equal(t, "A2", unit.UnitLabel())
}

func TestHostelSelectSkipsAdminReserved(t *testing.T) {
	gdb := newTestDB(t)
	rooms := []*models.HostelRoom{
		{ID: 1, FacilityID: 1, RoomCode: "A1", Capacity: 2, CapacityOccupied: 1, AdminReserved: true},
		{ID: 2, FacilityID: 1, RoomCode: "A2", Capacity: 2, CapacityOccupied: 0},
	}
	assert.NoError(t, gdb.Create(&rooms).Error)

	unit, err := NewHostelRegistry().SelectCandidateUnit(gdb, 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint(2), unit.UnitID())
}

func TestHostelSelectExhausted(t *testing.T) {
	gdb := newTestDB(t)
	rooms := []*models.HostelRoom{
		{ID: 1, FacilityID: 1, RoomCode: "A1", Capacity: 2, CapacityOccupied: 2},
		{ID: 2, FacilityID: 1, RoomCode: "A2", Capacity: 2, CapacityOccupied: 1, AdminReserved: true},
	}
	assert.NoError(t, gdb.Create(&rooms).Error)

	_, err := NewHostelRegistry().SelectCandidateUnit(gdb, 1, 0)
	assert.ErrorIs(t, err, common.ErrInventoryExhausted)
}

func TestHostelIncrementGuard(t *testing.T) {
	gdb := newTestDB(t)
	assert.NoError(t, gdb.Create(&models.HostelRoom{ID: 1, FacilityID: 1, RoomCode: "A1", Capacity: 1}).Error)

	reg := NewHostelRegistry()
	assert.NoError(t, reg.IncrementOccupancy(gdb, 1))
	// second increment exceeds capacity and must refuse
	assert.ErrorIs(t, reg.IncrementOccupancy(gdb, 1), common.ErrInventoryExhausted)

	var room models.HostelRoom
	assert.NoError(t, gdb.First(&room, 1).Error)
	assert.Equal(t, uint(1), room.CapacityOccupied)
}

func TestHostelDecrementUnderflow(t *testing.T) {
	gdb := newTestDB(t)
	assert.NoError(t, gdb.Create(&models.HostelRoom{ID: 1, FacilityID: 1, RoomCode: "A1", Capacity: 4, CapacityOccupied: 2}).Error)

	reg := NewHostelRegistry()
	assert.NoError(t, reg.DecrementOccupancy(gdb, 1, 2))
	assert.Error(t, reg.DecrementOccupancy(gdb, 1, 1))

	var room models.HostelRoom
	assert.NoError(t, gdb.First(&room, 1).Error)
	assert.Equal(t, uint(0), room.CapacityOccupied)
}

func TestHotelSelectSpecificRoomType(t *testing.T) {
	gdb := newTestDB(t)
	roomTypes := []*models.HotelRoomType{
		{ID: 1, FacilityID: 1, RoomType: "Standard", Price: 100, RoomsAvailable: 5, RoomsOccupied: 4, Available: true},
		{ID: 2, FacilityID: 1, RoomType: "Deluxe", Price: 200, RoomsAvailable: 5, RoomsOccupied: 0, Available: true},
	}
	assert.NoError(t, gdb.Create(&roomTypes).Error)

	reg := NewHotelRegistry()

	unit, err := reg.SelectCandidateUnit(gdb, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Standard", unit.UnitLabel())

	// without a requested type the block with the lowest occupancy wins
	unit, err = reg.SelectCandidateUnit(gdb, 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, "Deluxe", unit.UnitLabel())

	// a full block requested by id is exhausted, not "not found"
	assert.NoError(t, reg.IncrementOccupancy(gdb, 1))
	_, err = reg.SelectCandidateUnit(gdb, 1, 1)
	assert.ErrorIs(t, err, common.ErrInventoryExhausted)
}

func TestHotelSelectSkipsUnavailable(t *testing.T) {
	gdb := newTestDB(t)
	roomTypes := []*models.HotelRoomType{
		{ID: 1, FacilityID: 1, RoomType: "Standard", Price: 100, RoomsAvailable: 5, Available: true},
		{ID: 2, FacilityID: 1, RoomType: "Deluxe", Price: 200, RoomsAvailable: 5, Available: true},
	}
	assert.NoError(t, gdb.Create(&roomTypes).Error)
	// a block the admin has closed takes no allocations
	assert.NoError(t, gdb.Model(&models.HotelRoomType{}).Where("id = ?", 1).Update("available", false).Error)

	reg := NewHotelRegistry()
	unit, err := reg.SelectCandidateUnit(gdb, 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, "Deluxe", unit.UnitLabel())

	_, err = reg.SelectCandidateUnit(gdb, 1, 1)
	assert.ErrorIs(t, err, common.ErrInventoryExhausted)
}

func TestHotelUnitPrice(t *testing.T) {
	priced := &HotelUnit{RoomType: models.HotelRoomType{ID: 1, Price: 150}}
	amount, err := priced.UnitPrice(&models.Facility{}, types.EMPLOYED)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, amount)

	unpriced := &HotelUnit{RoomType: models.HotelRoomType{ID: 2}}
	_, err = unpriced.UnitPrice(&models.Facility{}, types.EMPLOYED)
	assert.ErrorIs(t, err, common.ErrPricingUnconfigured)
}

func TestHostelUnitPriceTiers(t *testing.T) {
	employed, selfEmployed := 100.0, 80.0
	facility := &models.Facility{
		ID:                    7,
		EmployedUserPrice:     &employed,
		SelfEmployedUserPrice: &selfEmployed,
	}
	unit := &HostelUnit{Room: models.HostelRoom{ID: 1}}

	amount, err := unit.UnitPrice(facility, types.EMPLOYED)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, amount)

	amount, err = unit.UnitPrice(facility, types.SELF_EMPLOYED)
	assert.NoError(t, err)
	assert.Equal(t, 80.0, amount)

	_, err = unit.UnitPrice(facility, types.UNEMPLOYED)
	assert.ErrorIs(t, err, common.ErrPricingUnconfigured)
}

func TestAdjustFacilityOccupancy(t *testing.T) {
	gdb := newTestDB(t)
	assert.NoError(t, gdb.Create(&models.Facility{ID: 1, FacilityName: "Camp A", TotalCapacity: 2}).Error)

	assert.NoError(t, AdjustFacilityOccupancy(gdb, 1, 2))
	assert.Error(t, AdjustFacilityOccupancy(gdb, 1, 1))
	assert.NoError(t, AdjustFacilityOccupancy(gdb, 1, -2))
	assert.Error(t, AdjustFacilityOccupancy(gdb, 1, -1))
}

func TestForKind(t *testing.T) {
	reg, err := ForKind(types.ACCOMMODATION_HOSTEL)
	assert.NoError(t, err)
	assert.Equal(t, types.ACCOMMODATION_HOSTEL, reg.Kind())

	reg, err = ForKind(types.ACCOMMODATION_HOTEL)
	assert.NoError(t, err)
	assert.Equal(t, types.ACCOMMODATION_HOTEL, reg.Kind())

	_, err = ForKind(types.ACCOMMODATION_NONE)
	assert.ErrorIs(t, err, common.ErrValidation)
}
