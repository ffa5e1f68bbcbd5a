package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"ars/src/common"
	"ars/src/lib"
	"ars/src/models"
	"ars/src/types"

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
	err = gdb.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.AccommodationCategory{},
		&models.Facility{},
		&models.HostelRoom{},
		&models.HotelRoomType{},
		&models.Allocation{},
		&models.PaymentRecord{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// seedHostelWorld builds one event with a single priced hostel facility.
func seedHostelWorld(t *testing.T, gdb *gorm.DB, roomCapacity uint) {
	t.Helper()
	employed, selfEmployed, unemployed := 5000.0, 4000.0, 2500.0
	fixtures := []any{
		&models.Event{ID: 1, Name: "Annual Camp", Location: "Ibadan"},
		&models.AccommodationCategory{ID: 1, Name: types.ACCOMMODATION_HOSTEL},
		&models.AccommodationCategory{ID: 2, Name: types.ACCOMMODATION_HOTEL},
		&models.Facility{
			ID: 1, EventID: 1, CategoryID: 1, FacilityName: "Camp Hostel A", Slug: "camp-hostel-a",
			Available: true, TotalCapacity: roomCapacity,
			EmployedUserPrice: &employed, SelfEmployedUserPrice: &selfEmployed, UnemployedUserPrice: &unemployed,
		},
		&models.HostelRoom{ID: 1, FacilityID: 1, RoomCode: "A-101", Capacity: roomCapacity},
	}
	for _, f := range fixtures {
		if err := gdb.Create(f).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func seedRegistrant(t *testing.T, gdb *gorm.DB, userID uint, status types.EmploymentStatus) {
	t.Helper()
	user := &models.User{
		ID: userID, Email: fmt.Sprintf("user%d@example.test", userID),
		FirstName: "Ada", LastName: fmt.Sprintf("Obi%d", userID),
		EmploymentStatus: status,
	}
	reg := &models.Registration{
		RegID: userID, UserID: userID, EventID: 1,
		ParticipationMode: types.PARTICIPATION_CAMPER,
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := gdb.Create(reg).Error; err != nil {
		t.Fatalf("seed registration: %v", err)
	}
}

// stubGateway fabricates checkout sessions; failures are switched on by
// flipping fail.
type stubGateway struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (g *stubGateway) InitializeCharge(ctx context.Context, req *types.KorapayChargeRequest) (*types.KorapayChargeResponse, error) {
	g.calls.Add(1)
	if g.fail.Load() {
		return nil, fmt.Errorf("initialize charge %s: %w", req.Reference, common.ErrGateway)
	}
	return &types.KorapayChargeResponse{
		Status:  true,
		Message: "success",
		Data: types.KorapayChargeResponseData{
			Reference:   req.Reference,
			CheckoutURL: "https://checkout.korapay.test/" + req.Reference,
		},
	}, nil
}

func noMail(*lib.SendMailInput) error { return nil }
