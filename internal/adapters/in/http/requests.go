package http

import "time"

// createOrderRequest is the body of POST /api/v1/orders.
// Prices are integer minor units; currency defaults to the marketplace
// currency when omitted.
type createOrderRequest struct {
	Pickup           string    `json:"pickup" validate:"required"`
	Destination      string    `json:"destination" validate:"required"`
	CargoDescription string    `json:"cargo_description" validate:"max=1000"`
	TruckClass       string    `json:"truck_class" validate:"required"`
	BasePrice        int64     `json:"base_price" validate:"required,gt=0"`
	Currency         string    `json:"currency" validate:"omitempty,len=3"`
	ScheduledAt      time.Time `json:"scheduled_at" validate:"required"`
}

// submitBidRequest is the body of POST /api/v1/orders/:orderID/bids.
type submitBidRequest struct {
	Price    int64  `json:"price" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// counterBidRequest is the body of POST /api/v1/bids/:bidID/counter.
type counterBidRequest struct {
	Price    int64  `json:"price" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// advanceOrderRequest is the body of POST /api/v1/orders/:orderID/advance.
type advanceOrderRequest struct {
	Stage string `json:"stage" validate:"required,oneof=Pickup InTransit Delivered"`
}
