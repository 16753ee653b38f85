// Package escrowrepo provides data transfer objects and mapping functions for
// escrow entry persistence. The escrow ledger records every hold placed with
// the payment gateway and its settlement outcome.
package escrowrepo

import (
	"time"

	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting escrow entries.
// The failed_op and failed_amount columns carry the retry state consumed by
// the reconciliation sweep.
type EntryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	PayerRole    int
	Kind         int
	Amount       int64
	Currency     string `gorm:"type:varchar(3)"`
	Status       int    `gorm:"index"`
	GatewayRef   string
	FailedOp     int
	FailedAmount *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for escrow entries.
func (EntryDTO) TableName() string {
	return "escrow_entries"
}

// fromDomain converts an escrow entry to its database representation.
func fromDomain(aggregate *escrow.Entry) EntryDTO {
	var failedAmount *int64
	if amount := aggregate.FailedAmount(); amount != nil {
		raw := amount.Amount()
		failedAmount = &raw
	}

	return EntryDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		PayerRole:    int(aggregate.PayerRole()),
		Kind:         int(aggregate.Kind()),
		Amount:       aggregate.Amount().Amount(),
		Currency:     aggregate.Amount().Currency(),
		Status:       int(aggregate.Status()),
		GatewayRef:   aggregate.GatewayRef(),
		FailedOp:     int(aggregate.FailedOperation()),
		FailedAmount: failedAmount,
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an escrow entry using RestoreEntry.
func toDomain(dto EntryDTO) (*escrow.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	var failedAmount *kernel.Money
	if dto.FailedAmount != nil {
		m, moneyErr := kernel.NewMoney(*dto.FailedAmount, dto.Currency)
		if moneyErr != nil {
			return nil, moneyErr
		}
		failedAmount = &m
	}

	return escrow.RestoreEntry(
		id,
		orderID,
		escrow.PayerRole(dto.PayerRole),
		escrow.Kind(dto.Kind),
		amount,
		escrow.Status(dto.Status),
		dto.GatewayRef,
		escrow.Operation(dto.FailedOp),
		failedAmount,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
