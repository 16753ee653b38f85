package http

import (
	"time"

	"freightline/internal/core/application/usecases/queries"
)

// orderResponse is the wire form of an order read model.
type orderResponse struct {
	ID               string     `json:"id"`
	CustomerID       string     `json:"customer_id"`
	Pickup           string     `json:"pickup"`
	Destination      string     `json:"destination"`
	CargoDescription string     `json:"cargo_description"`
	TruckClass       string     `json:"truck_class"`
	BasePrice        int64      `json:"base_price"`
	FinalPrice       *int64     `json:"final_price,omitempty"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	ScheduledAt      time.Time  `json:"scheduled_at"`
	BiddingClosesAt  *time.Time `json:"bidding_closes_at,omitempty"`
	AssignedDriverID *string    `json:"assigned_driver_id,omitempty"`
	AssignedBidID    *string    `json:"assigned_bid_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toOrderResponse(o queries.GetOrderQueryResponse) orderResponse {
	response := orderResponse{
		ID:               o.ID.String(),
		CustomerID:       o.CustomerID.String(),
		Pickup:           o.Pickup,
		Destination:      o.Destination,
		CargoDescription: o.CargoDescription,
		TruckClass:       o.TruckClass,
		BasePrice:        o.BasePrice,
		FinalPrice:       o.FinalPrice,
		Currency:         o.Currency,
		Status:           o.Status,
		ScheduledAt:      o.ScheduledAt,
		BiddingClosesAt:  o.BiddingClosesAt,
		CreatedAt:        o.CreatedAt,
	}

	if o.AssignedDriverID != nil {
		driverID := o.AssignedDriverID.String()
		response.AssignedDriverID = &driverID
	}
	if o.AssignedBidID != nil {
		bidID := o.AssignedBidID.String()
		response.AssignedBidID = &bidID
	}

	return response
}

// bidResponse is the wire form of a bid read model.
type bidResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	DriverID      string    `json:"driver_id"`
	Price         int64     `json:"price"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CounterRounds int       `json:"counter_rounds"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toBidResponse(b queries.ListBidsForOrderQueryResponse) bidResponse {
	return bidResponse{
		ID:            b.ID.String(),
		OrderID:       b.OrderID.String(),
		DriverID:      b.DriverID.String(),
		Price:         b.Price,
		Currency:      b.Currency,
		Status:        b.Status,
		CounterRounds: b.CounterRounds,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// trackResponse is the wire form of a driver position.
type trackResponse struct {
	OrderID   string  `json:"order_id"`
	DriverID  string  `json:"driver_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// createdResponse returns the identifier of a newly created resource.
type createdResponse struct {
	ID string `json:"id"`
}
