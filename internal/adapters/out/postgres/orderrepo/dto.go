// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and driver assignment.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress      string
	DestinationAddress string
	CargoDescription   string
	TruckClass         int
	BasePriceAmount    int64
	BasePriceCurrency  string `gorm:"type:varchar(3)"`
	FinalPriceAmount   *int64
	Status             int `gorm:"index"`
	ScheduledAt        time.Time
	BiddingClosesAt    *time.Time
	AssignedDriverID   *uuid.UUID `gorm:"type:uuid;index"`
	AssignedBidID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// The accepted bid's price shares the base price currency column.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID, bidID *uuid.UUID
	if id := aggregate.AssignedDriver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}
	if id := aggregate.AssignedBid(); id != nil {
		raw := id.Bytes()
		bidID = &raw
	}

	var finalPrice *int64
	if price := aggregate.FinalPrice(); price != nil {
		amount := price.Amount()
		finalPrice = &amount
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		PickupAddress:      aggregate.Pickup().Value(),
		DestinationAddress: aggregate.Destination().Value(),
		CargoDescription:   aggregate.CargoDescription(),
		TruckClass:         int(aggregate.TruckClass()),
		BasePriceAmount:    aggregate.BasePrice().Amount(),
		BasePriceCurrency:  aggregate.BasePrice().Currency(),
		FinalPriceAmount:   finalPrice,
		Status:             int(aggregate.Status()),
		ScheduledAt:        aggregate.ScheduledAt(),
		BiddingClosesAt:    aggregate.BiddingClosesAt(),
		AssignedDriverID:   driverID,
		AssignedBidID:      bidID,
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewAddress(dto.PickupAddress)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewAddress(dto.DestinationAddress)
	if err != nil {
		return nil, err
	}

	basePrice, err := kernel.NewMoney(dto.BasePriceAmount, dto.BasePriceCurrency)
	if err != nil {
		return nil, err
	}

	var finalPrice *kernel.Money
	if dto.FinalPriceAmount != nil {
		price, priceErr := kernel.NewMoney(*dto.FinalPriceAmount, dto.BasePriceCurrency)
		if priceErr != nil {
			return nil, priceErr
		}
		finalPrice = &price
	}

	var driverID, bidID *kernel.UUID
	if dto.AssignedDriverID != nil {
		dID, idErr := kernel.UUIDFromBytes((*dto.AssignedDriverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		driverID = &dID
	}
	if dto.AssignedBidID != nil {
		bID, idErr := kernel.UUIDFromBytes((*dto.AssignedBidID)[:])
		if idErr != nil {
			return nil, idErr
		}
		bidID = &bID
	}

	return order.RestoreOrder(
		id,
		customerID,
		pickup,
		destination,
		dto.CargoDescription,
		order.TruckClass(dto.TruckClass),
		basePrice,
		finalPrice,
		order.Status(dto.Status),
		dto.ScheduledAt,
		dto.BiddingClosesAt,
		driverID,
		bidID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
