package queries

import (
	"errors"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/guard"
)

var (
	ErrListBidsForOrderQueryIsNotConstructed = errors.New(
		"ListBidsForOrderQuery must be created via NewListBidsForOrderQuery constructor",
	)
)

// ListBidsForOrderQuery retrieves every bid on one order, newest first.
// This is what the customer reviews before accepting, countering or declining.
//
// Example:
//
//	query, err := NewListBidsForOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewListBidsForOrderQueryHandler(db)
//	bids, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list bids: %w", err)
//	}
//	fmt.Printf("%d bids on order\n", len(bids))
type ListBidsForOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListBidsForOrderQuery creates a query to list the bids on an order.
func NewListBidsForOrderQuery(orderID kernel.UUID) (ListBidsForOrderQuery, error) {
	query := ListBidsForOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return ListBidsForOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListBidsForOrderQueryIsNotConstructed if validation fails.
func (q ListBidsForOrderQuery) Validate() error {
	return q.guard.Validate(ErrListBidsForOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose bids are listed.
func (q ListBidsForOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *ListBidsForOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// ListBidsForOrderQueryResponse is the read model of one bid.
type ListBidsForOrderQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	DriverID      kernel.UUID
	Price         int64
	Currency      string
	Status        string
	CounterRounds int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
