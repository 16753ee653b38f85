package commands_test

import (
	"testing"
	"time"

	"freightline/internal/core/application/usecases/commands"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	pickup, _ := kernel.NewAddress("Bole Road")
	destination, _ := kernel.NewAddress("Hawassa")
	scheduledAt := time.Now().UTC().Add(24 * time.Hour)

	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, pickup, destination,
		"furniture", order.TruckClassLight, money(t, 5000), scheduledAt,
	)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, "furniture", cmd.CargoDescription())
	assert.Equal(t, order.TruckClassLight, cmd.TruckClass())
	assert.Equal(t, int64(5000), cmd.BasePrice().Amount())
	assert.Equal(t, scheduledAt, cmd.ScheduledAt())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	pickup, _ := kernel.NewAddress("Bole Road")
	destination, _ := kernel.NewAddress("Hawassa")

	_, err := commands.NewCreateOrderCommand(
		invalidID, kernel.NewUUID(), pickup, destination,
		"", order.TruckClassLight, money(t, 5000), time.Now().UTC(),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_MissingSchedule(t *testing.T) {
	pickup, _ := kernel.NewAddress("Bole Road")
	destination, _ := kernel.NewAddress("Hawassa")

	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), pickup, destination,
		"", order.TruckClassLight, money(t, 5000), time.Time{},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrScheduledAtIsRequired)
}

func TestNewCreateOrderCommand_UnknownTruckClass(t *testing.T) {
	pickup, _ := kernel.NewAddress("Bole Road")
	destination, _ := kernel.NewAddress("Hawassa")

	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), pickup, destination,
		"", order.TruckClassUnknown, money(t, 5000), time.Now().UTC(),
	)

	require.Error(t, err)
}

func TestCreateOrderCommand_Validate(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
