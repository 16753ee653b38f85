package queries

import (
	"context"
	"errors"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/ports"
	"freightline/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOrderNotTrackable is returned when the order has no assigned driver to track.
var ErrOrderNotTrackable = errors.New("order has no assigned driver")

// TrackOrderQueryHandler resolves an order's assigned driver and asks the
// location service for their position.
type TrackOrderQueryHandler struct {
	db        *gorm.DB
	locations ports.LocationProvider
}

// NewTrackOrderQueryHandler creates a handler for order tracking queries.
func NewTrackOrderQueryHandler(db *gorm.DB, locations ports.LocationProvider) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db, locations: locations}
}

// Handle executes the tracking query.
// Returns errs.ErrObjectNotFound when the order does not exist and
// ErrOrderNotTrackable when no driver is assigned to it.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT assigned_driver_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return TrackOrderQueryResponse{}, err
		}
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var driverID uuid.NullUUID
	if err = rows.Scan(&driverID); err != nil {
		return TrackOrderQueryResponse{}, err
	}
	if !driverID.Valid {
		return TrackOrderQueryResponse{}, ErrOrderNotTrackable
	}

	dID, err := kernel.UUIDFromBytes(driverID.UUID[:])
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	coords, err := h.locations.DriverLocation(ctx, dID)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	return TrackOrderQueryResponse{
		OrderID:   query.OrderID(),
		DriverID:  dID,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}, nil
}
