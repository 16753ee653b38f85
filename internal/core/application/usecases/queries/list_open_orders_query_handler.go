package queries

import (
	"context"

	"freightline/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOpenOrdersQueryHandler retrieves orders open for bids from the database.
// Newest postings come first so fresh work surfaces at the top of the feed.
type ListOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOpenOrdersQueryHandler creates a handler for the open order feed.
// Requires a GORM database connection for query execution.
func NewListOpenOrdersQueryHandler(db *gorm.DB) ListOpenOrdersQueryHandler {
	return ListOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders in Pending or Bidding status.
func (h ListOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOpenOrdersQuery,
) ([]GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrderQueryResponse, 0)

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
		WHERE status IN (?, ?)
		ORDER BY created_at DESC
	`, order.Pending, order.Bidding).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
