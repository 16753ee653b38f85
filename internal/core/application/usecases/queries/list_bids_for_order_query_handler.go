package queries

import (
	"context"

	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListBidsForOrderQueryHandler retrieves the bids on an order from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type ListBidsForOrderQueryHandler struct {
	db *gorm.DB
}

// NewListBidsForOrderQueryHandler creates a handler for bid listing queries.
// Requires a GORM database connection for query execution.
func NewListBidsForOrderQueryHandler(db *gorm.DB) ListBidsForOrderQueryHandler {
	return ListBidsForOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve all bids on the order, newest first.
// An order without bids yields an empty slice, not an error.
func (h ListBidsForOrderQueryHandler) Handle(
	ctx context.Context,
	query ListBidsForOrderQuery,
) ([]ListBidsForOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bids := make([]ListBidsForOrderQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			driver_id,
			price_amount,
			price_currency,
			status,
			counter_rounds,
			created_at,
			updated_at
		FROM bids
		WHERE order_id = ?
		ORDER BY created_at DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListBidsForOrderQueryResponse
		var id, orderID, driverID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&orderID,
			&driverID,
			&resp.Price,
			&resp.Currency,
			&status,
			&resp.CounterRounds,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		bidID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = bidID

		oID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = oID

		dID, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.DriverID = dID

		resp.Status = bid.Status(status).String()
		bids = append(bids, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}
