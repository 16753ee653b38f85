// Package bidrepo provides data transfer objects and mapping functions for bid persistence.
// This package implements the repository pattern for the bid domain aggregate, handling
// the conversion between domain entities and database representations.
package bidrepo

import (
	"time"

	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BidDTO represents the database structure for persisting bid aggregates.
// Indexed by order for the bid listing and by (order, driver) for the
// single-pending-bid rule.
type BidDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index:idx_bids_order;index:idx_bids_order_driver"`
	DriverID      uuid.UUID `gorm:"type:uuid;index:idx_bids_order_driver"`
	PriceAmount   int64
	PriceCurrency string `gorm:"type:varchar(3)"`
	Status        int    `gorm:"index"`
	CounterRounds int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// StatusBeforeDecline remembers the status an acceptance's bulk decline
	// overwrote, so the compensating reinstate restores exactly that. NULL for
	// bids declined individually or by the expiry sweep.
	StatusBeforeDecline *int
}

// TableName specifies the database table name for bid entities.
// Overrides GORM's default naming convention to use "bids".
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid domain aggregate to its database representation.
func fromDomain(aggregate *bid.Bid) BidDTO {
	return BidDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		DriverID:      aggregate.DriverID().Bytes(),
		PriceAmount:   aggregate.Price().Amount(),
		PriceCurrency: aggregate.Price().Currency(),
		Status:        int(aggregate.Status()),
		CounterRounds: aggregate.CounterRounds(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a bid domain aggregate using RestoreBid.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return bid.RestoreBid(
		id,
		orderID,
		driverID,
		price,
		bid.Status(dto.Status),
		dto.CounterRounds,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
