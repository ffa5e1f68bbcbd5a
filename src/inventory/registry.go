package inventory

import (
	"ars/src/common"
	"ars/src/models"
	"ars/src/types"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Unit is one reservable slot source: a hostel room (beds) or a hotel
// room-type block (whole rooms). Both run the same reservation algorithm.
type Unit interface {
	UnitID() uint
	UnitLabel() string
	// UnitPrice resolves the amount to charge for one slot. Hostel rooms
	// price by the registrant's employment tier on the owning facility;
	// hotel room types carry their own price.
	UnitPrice(f *models.Facility, status types.EmploymentStatus) (float64, error)
}

// Registry owns occupancy counters for one unit kind. All mutations are
// guarded by occupancy predicates so a lost race surfaces as zero rows
// affected instead of a corrupted counter.
type Registry interface {
	Kind() types.AccommodationType
	// SelectCandidateUnit scans open units ordered by occupancy ascending,
	// deterministic tie-break on id. unitID narrows the scan to one unit
	// when the caller asked for a specific room type; zero means any.
	// Returns common.ErrInventoryExhausted when nothing qualifies.
	SelectCandidateUnit(tx *gorm.DB, facilityID uint, unitID uint) (Unit, error)
	FindUnit(tx *gorm.DB, unitID uint) (Unit, error)
	IncrementOccupancy(tx *gorm.DB, unitID uint) error
	DecrementOccupancy(tx *gorm.DB, unitID uint, count uint) error
}

// withRowLock adds SELECT ... FOR UPDATE on engines that support it. On
// engines without row locks the caller serializes with a per-facility mutex
// and the guarded updates below keep the counters correct regardless.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

type HostelUnit struct {
	Room models.HostelRoom
}

func (u *HostelUnit) UnitID() uint      { return u.Room.ID }
func (u *HostelUnit) UnitLabel() string { return u.Room.RoomCode }
func (u *HostelUnit) UnitPrice(f *models.Facility, status types.EmploymentStatus) (float64, error) {
	var price *float64
	switch status {
	case types.SELF_EMPLOYED:
		price = f.SelfEmployedUserPrice
	case types.UNEMPLOYED:
		price = f.UnemployedUserPrice
	default:
		price = f.EmployedUserPrice
	}
	if price == nil {
		return 0, fmt.Errorf("facility %d, tier %s: %w", f.ID, status, common.ErrPricingUnconfigured)
	}
	return *price, nil
}

type HostelRegistry struct{}

func NewHostelRegistry() *HostelRegistry { return &HostelRegistry{} }

func (r *HostelRegistry) Kind() types.AccommodationType { return types.ACCOMMODATION_HOSTEL }

func (r *HostelRegistry) SelectCandidateUnit(tx *gorm.DB, facilityID uint, unitID uint) (Unit, error) {
	var room models.HostelRoom
	q := withRowLock(tx).
		Where("facility_id = ? AND admin_reserved = ? AND capacity_occupied < capacity", facilityID, false)
	if unitID > 0 {
		q = q.Where("id = ?", unitID)
	}
	err := q.
		Order("capacity_occupied asc, id asc").
		First(&room).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInventoryExhausted
		}
		return nil, err
	}
	return &HostelUnit{Room: room}, nil
}

func (r *HostelRegistry) FindUnit(tx *gorm.DB, unitID uint) (Unit, error) {
	var room models.HostelRoom
	if err := tx.Where(&models.HostelRoom{ID: unitID}).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &HostelUnit{Room: room}, nil
}

func (r *HostelRegistry) IncrementOccupancy(tx *gorm.DB, unitID uint) error {
	res := tx.
		Model(&models.HostelRoom{}).
		Where("id = ? AND capacity_occupied < capacity", unitID).
		UpdateColumn("capacity_occupied", gorm.Expr("capacity_occupied + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrInventoryExhausted
	}
	return nil
}

func (r *HostelRegistry) DecrementOccupancy(tx *gorm.DB, unitID uint, count uint) error {
	res := tx.
		Model(&models.HostelRoom{}).
		Where("id = ? AND capacity_occupied >= ?", unitID, count).
		UpdateColumn("capacity_occupied", gorm.Expr("capacity_occupied - ?", count))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("hostel room %d: occupancy underflow on decrement by %d", unitID, count)
	}
	return nil
}

type HotelUnit struct {
	RoomType models.HotelRoomType
}

func (u *HotelUnit) UnitID() uint      { return u.RoomType.ID }
func (u *HotelUnit) UnitLabel() string { return u.RoomType.RoomType }
func (u *HotelUnit) UnitPrice(f *models.Facility, status types.EmploymentStatus) (float64, error) {
	if u.RoomType.Price <= 0 {
		return 0, fmt.Errorf("room type %d: %w", u.RoomType.ID, common.ErrPricingUnconfigured)
	}
	return u.RoomType.Price, nil
}

type HotelRegistry struct{}

func NewHotelRegistry() *HotelRegistry { return &HotelRegistry{} }

func (r *HotelRegistry) Kind() types.AccommodationType { return types.ACCOMMODATION_HOTEL }

func (r *HotelRegistry) SelectCandidateUnit(tx *gorm.DB, facilityID uint, unitID uint) (Unit, error) {
	var roomType models.HotelRoomType
	q := withRowLock(tx).
		Where("facility_id = ? AND admin_reserved = ? AND available = ? AND rooms_occupied < rooms_available", facilityID, false, true)
	if unitID > 0 {
		q = q.Where("id = ?", unitID)
	}
	err := q.
		Order("rooms_occupied asc, id asc").
		First(&roomType).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInventoryExhausted
		}
		return nil, err
	}
	return &HotelUnit{RoomType: roomType}, nil
}

func (r *HotelRegistry) FindUnit(tx *gorm.DB, unitID uint) (Unit, error) {
	var roomType models.HotelRoomType
	if err := tx.Where(&models.HotelRoomType{ID: unitID}).First(&roomType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &HotelUnit{RoomType: roomType}, nil
}

func (r *HotelRegistry) IncrementOccupancy(tx *gorm.DB, unitID uint) error {
	res := tx.
		Model(&models.HotelRoomType{}).
		Where("id = ? AND rooms_occupied < rooms_available", unitID).
		UpdateColumn("rooms_occupied", gorm.Expr("rooms_occupied + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrInventoryExhausted
	}
	return nil
}

func (r *HotelRegistry) DecrementOccupancy(tx *gorm.DB, unitID uint, count uint) error {
	res := tx.
		Model(&models.HotelRoomType{}).
		Where("id = ? AND rooms_occupied >= ?", unitID, count).
		UpdateColumn("rooms_occupied", gorm.Expr("rooms_occupied - ?", count))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("hotel room type %d: occupancy underflow on decrement by %d", unitID, count)
	}
	return nil
}

// AdjustFacilityOccupancy moves the facility aggregate counter by delta in
// the same unit of work as the unit counter it mirrors.
func AdjustFacilityOccupancy(tx *gorm.DB, facilityID uint, delta int) error {
	var res *gorm.DB
	if delta >= 0 {
		res = tx.
			Model(&models.Facility{}).
			Where("id = ? AND capacity_occupied + ? <= total_capacity", facilityID, delta).
			UpdateColumn("capacity_occupied", gorm.Expr("capacity_occupied + ?", delta))
	} else {
		res = tx.
			Model(&models.Facility{}).
			Where("id = ? AND capacity_occupied >= ?", facilityID, -delta).
			UpdateColumn("capacity_occupied", gorm.Expr("capacity_occupied - ?", -delta))
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("facility %d: aggregate occupancy out of range on delta %d", facilityID, delta)
	}
	return nil
}

// ForKind returns the registry owning the given accommodation kind.
func ForKind(kind types.AccommodationType) (Registry, error) {
	switch kind {
	case types.ACCOMMODATION_HOSTEL:
		return NewHostelRegistry(), nil
	case types.ACCOMMODATION_HOTEL:
		return NewHotelRegistry(), nil
	default:
		return nil, fmt.Errorf("no registry for accommodation kind %s: %w", kind, common.ErrValidation)
	}
}
