package orderrepo

import (
	"context"
	"errors"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// Uses Select("*") so cleared assignment columns are written back as NULL.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AssignIfUnassigned atomically writes the bid assignment onto a still
// unassigned order in Bidding status. The single UPDATE statement is the
// arbiter between concurrent acceptances: exactly one caller changes the row,
// every other gets order.ErrAlreadyAssigned and no side effects.
func (r *GormOrderRepository) AssignIfUnassigned(
	ctx context.Context,
	orderID, driverID, bidID kernel.UUID,
	finalPrice kernel.Money,
) error {
	if err := errors.Join(
		orderID.Validate(), driverID.Validate(), bidID.Validate(), finalPrice.Validate(),
	); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND assigned_bid_id IS NULL", orderID.Bytes(), order.Bidding).
		Updates(map[string]any{
			"status":             int(order.Accepted),
			"assigned_driver_id": driverID.Bytes(),
			"assigned_bid_id":    bidID.Bytes(),
			"final_price_amount": finalPrice.Amount(),
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return order.ErrAlreadyAssigned
	}

	return nil
}

// CountActiveByDriver counts the driver's orders in Accepted, Pickup or InTransit.
func (r *GormOrderRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int64, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("assigned_driver_id = ? AND status IN (?, ?, ?)",
			driverID.Bytes(), order.Accepted, order.Pickup, order.InTransit).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetExpiredForBidding retrieves unassigned orders whose bidding window
// closed before the given instant. Orders that never opened bidding expire
// off their scheduled pickup time instead.
func (r *GormOrderRepository) GetExpiredForBidding(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where(`status IN (?, ?)
			AND assigned_bid_id IS NULL
			AND COALESCE(bidding_closes_at, scheduled_at) < ?`,
			order.Pending, order.Bidding, now).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}
