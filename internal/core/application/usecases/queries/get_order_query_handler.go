package queries

import (
	"context"
	"database/sql"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve the order.
// Returns errs.ErrObjectNotFound when no order exists for the identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			pickup_address,
			destination_address,
			cargo_description,
			truck_class,
			base_price_amount,
			base_price_currency,
			final_price_amount,
			status,
			scheduled_at,
			bidding_closes_at,
			assigned_driver_id,
			assigned_bid_id,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, rows.Err()
}

// scanOrderRow maps one orders row onto the read model.
func scanOrderRow(rows *sql.Rows) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id, customerID uuid.UUID
	var driverID, bidID uuid.NullUUID
	var finalPrice sql.NullInt64
	var biddingClosesAt sql.NullTime
	var truckClass, status int

	if err := rows.Scan(
		&id,
		&customerID,
		&resp.Pickup,
		&resp.Destination,
		&resp.CargoDescription,
		&truckClass,
		&resp.BasePrice,
		&resp.Currency,
		&finalPrice,
		&status,
		&resp.ScheduledAt,
		&biddingClosesAt,
		&driverID,
		&bidID,
		&resp.CreatedAt,
	); err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	custID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.CustomerID = custID

	resp.TruckClass = order.TruckClass(truckClass).String()
	resp.Status = order.Status(status).String()

	if finalPrice.Valid {
		resp.FinalPrice = &finalPrice.Int64
	}
	if biddingClosesAt.Valid {
		resp.BiddingClosesAt = &biddingClosesAt.Time
	}
	if driverID.Valid {
		dID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.AssignedDriverID = &dID
	}
	if bidID.Valid {
		bID, idErr := kernel.UUIDFromBytes(bidID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.AssignedBidID = &bID
	}

	return resp, nil
}
