package queries

import (
	"errors"

	"freightline/internal/pkg/guard"
)

var (
	ErrListOpenOrdersQueryIsNotConstructed = errors.New(
		"ListOpenOrdersQuery must be created via NewListOpenOrdersQuery constructor",
	)
)

// ListOpenOrdersQuery retrieves all orders currently open for bids.
// This is the feed drivers browse when looking for work.
//
// Example:
//
//	query := NewListOpenOrdersQuery()
//	handler := NewListOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list open orders: %w", err)
//	}
//	fmt.Printf("%d orders open for bids\n", len(orders))
type ListOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListOpenOrdersQuery creates a query to list orders open for bids.
// This is a parameterless query returning orders in Pending or Bidding status.
func NewListOpenOrdersQuery() ListOpenOrdersQuery {
	return ListOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOpenOrdersQueryIsNotConstructed if validation fails.
func (q ListOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOpenOrdersQueryIsNotConstructed)
}
