package http

import (
	"errors"
	"net/http"

	"freightline/internal/core/application/usecases/commands"
	"freightline/internal/core/application/usecases/queries"
	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application and domain errors to HTTP status codes.
//
// The mapping keeps transport concerns out of the core: handlers return the
// domain's sentinel errors and this is the single place they become statuses.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound

	case errors.Is(err, commands.ErrNotOrderOwner),
		errors.Is(err, commands.ErrNotBidOwner),
		errors.Is(err, commands.ErrNotOrderParticipant),
		errors.Is(err, commands.ErrNotAssignedDriver):
		status = http.StatusForbidden

	case errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, commands.ErrDriverBusy),
		errors.Is(err, commands.ErrBiddingClosed),
		errors.Is(err, commands.ErrAcceptCoolingDown),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, bid.ErrInvalidStatusChange),
		errors.Is(err, bid.ErrCounterRoundsExceeded),
		errors.Is(err, queries.ErrOrderNotTrackable):
		status = http.StatusConflict

	case errors.Is(err, commands.ErrEscrowFailure):
		status = http.StatusBadGateway

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, bid.ErrPriceIsNotPositive),
		errors.Is(err, order.ErrCargoDescriptionTooLong):
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak internals to the client.
		message = "Internal server error"
	}

	return c.JSON(status, errorResponse{Code: status, Message: message})
}

// writeBadRequest reports a malformed or invalid request body.
func writeBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
