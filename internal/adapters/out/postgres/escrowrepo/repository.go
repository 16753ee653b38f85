package escrowrepo

import (
	"context"
	"errors"

	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEscrowRepository implements EscrowRepository using GORM.
type GormEscrowRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEscrowRepository creates a new GORM escrow repository.
func NewGormEscrowRepository(db *gorm.DB, tracker aggregateTracker) *GormEscrowRepository {
	return &GormEscrowRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new escrow entry to the database.
func (r *GormEscrowRepository) Add(ctx context.Context, aggregate *escrow.Entry) error {
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

// Update saves an existing escrow entry to the database.
// Uses Select("*") so a cleared retry state is written back as NULL/zero.
func (r *GormEscrowRepository) Update(ctx context.Context, aggregate *escrow.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
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

// Get retrieves an escrow entry by ID.
func (r *GormEscrowRepository) Get(ctx context.Context, id kernel.UUID) (*escrow.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow entry", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves all escrow entries for an order.
func (r *GormEscrowRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*escrow.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByOrderAndKind retrieves the order's entry of the given kind.
// Returns errs.ErrObjectNotFound when the order has no such entry.
func (r *GormEscrowRepository) GetByOrderAndKind(
	ctx context.Context,
	orderID kernel.UUID,
	kind escrow.Kind,
) (*escrow.Entry, error) {
	if err := errors.Join(orderID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	var dto EntryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND kind = ?", orderID.Bytes(), int(kind)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow entry", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllFailed retrieves entries awaiting the reconciliation sweep.
func (r *GormEscrowRepository) GetAllFailed(ctx context.Context) ([]*escrow.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", escrow.Failed).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []EntryDTO) ([]*escrow.Entry, error) {
	entries := make([]*escrow.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
