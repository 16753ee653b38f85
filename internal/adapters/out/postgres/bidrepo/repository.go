package bidrepo

import (
	"context"
	"errors"
	"time"

	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBidRepository implements BidRepository using GORM.
type GormBidRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBidRepository creates a new GORM bid repository.
func NewGormBidRepository(db *gorm.DB, tracker aggregateTracker) *GormBidRepository {
	return &GormBidRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bid to the database.
func (r *GormBidRepository) Add(ctx context.Context, aggregate *bid.Bid) error {
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

// Update saves an existing bid to the database.
func (r *GormBidRepository) Update(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BidDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a bid by ID.
func (r *GormBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BidDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves all bids for an order, newest first.
func (r *GormBidRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BidDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		bids = append(bids, b)
	}

	return bids, nil
}

// GetPendingByOrderAndDriver retrieves the driver's pending bid on the order.
// Returns errs.ErrObjectNotFound when the driver has no pending bid there.
func (r *GormBidRepository) GetPendingByOrderAndDriver(
	ctx context.Context,
	orderID, driverID kernel.UUID,
) (*bid.Bid, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	var dto BidDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND driver_id = ? AND status = ?",
			orderID.Bytes(), driverID.Bytes(), bid.Pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending bid", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DeclineSiblings moves every open bid on the order, except the winner, to
// Declined, remembering each bid's prior status so a compensating
// ReinstateSiblings can restore it. Part of the acceptance transaction.
func (r *GormBidRepository) DeclineSiblings(ctx context.Context, orderID, winnerBidID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), winnerBidID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("order_id = ? AND id != ? AND status IN (?, ?)",
			orderID.Bytes(), winnerBidID.Bytes(), bid.Pending, bid.Countered).
		Updates(map[string]any{
			"status":                int(bid.Declined),
			"status_before_decline": gorm.Expr("status"),
			"updated_at":            time.Now().UTC(),
		}).Error
}

// ReinstateSiblings restores the bids that DeclineSiblings declined, except
// the winner, to the status each held before. Bids declined individually or
// by the expiry sweep carry no memo and stay Declined. Compensation path when
// an escrow hold fails after acceptance.
func (r *GormBidRepository) ReinstateSiblings(ctx context.Context, orderID, winnerBidID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), winnerBidID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("order_id = ? AND id != ? AND status = ? AND status_before_decline IS NOT NULL",
			orderID.Bytes(), winnerBidID.Bytes(), bid.Declined).
		Updates(map[string]any{
			"status":                gorm.Expr("status_before_decline"),
			"status_before_decline": nil,
			"updated_at":            time.Now().UTC(),
		}).Error
}

// DeclineAllPending moves every open bid on the order to Declined.
// Used when the order terminates or its bidding window expires.
func (r *GormBidRepository) DeclineAllPending(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("order_id = ? AND status IN (?, ?)", orderID.Bytes(), bid.Pending, bid.Countered).
		Updates(map[string]any{
			"status":     int(bid.Declined),
			"updated_at": time.Now().UTC(),
		}).Error
}
