package order_test

import (
	"testing"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder(t *testing.T) *order.Order {
	t.Helper()

	pickup, err := kernel.NewAddress("Bole Road, Addis Ababa")
	require.NoError(t, err)
	destination, err := kernel.NewAddress("Hawassa, Piassa")
	require.NoError(t, err)
	basePrice, err := kernel.NewMoney(10000, "ETB")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		pickup,
		destination,
		"40 quintals of teff",
		order.TruckClassMedium,
		basePrice,
		time.Now().UTC().Add(24*time.Hour),
	)
	require.NoError(t, err)
	return o
}

func openedOrder(t *testing.T) *order.Order {
	t.Helper()

	o := validOrder(t)
	require.NoError(t, o.OpenBidding(time.Now().UTC().Add(30*time.Minute)))
	return o
}

func assignedOrder(t *testing.T) (*order.Order, kernel.UUID, kernel.UUID) {
	t.Helper()

	o := openedOrder(t)
	driverID := kernel.NewUUID()
	bidID := kernel.NewUUID()
	finalPrice, err := kernel.NewMoney(9000, "ETB")
	require.NoError(t, err)
	require.NoError(t, o.Assign(driverID, bidID, finalPrice))
	return o, driverID, bidID
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with all valid parameters", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.FinalPrice())
		assert.Nil(t, o.BiddingClosesAt())
		assert.Nil(t, o.AssignedDriver())
		assert.Nil(t, o.AssignedBid())
	})

	t.Run("should fail with unconstructed identifiers", func(t *testing.T) {
		var invalidID kernel.UUID
		pickup, _ := kernel.NewAddress("A")
		destination, _ := kernel.NewAddress("B")
		price, _ := kernel.NewMoney(100, "ETB")

		o, err := order.NewOrder(invalidID, invalidID, pickup, destination, "",
			order.TruckClassMini, price, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with invalid truck class", func(t *testing.T) {
		pickup, _ := kernel.NewAddress("A")
		destination, _ := kernel.NewAddress("B")
		price, _ := kernel.NewMoney(100, "ETB")

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pickup, destination, "",
			order.TruckClassUnknown, price, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with overlong cargo description", func(t *testing.T) {
		pickup, _ := kernel.NewAddress("A")
		destination, _ := kernel.NewAddress("B")
		price, _ := kernel.NewMoney(100, "ETB")
		description := make([]byte, order.CargoDescriptionMaxLength+1)
		for i := range description {
			description[i] = 'x'
		}

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pickup, destination,
			string(description), order.TruckClassMini, price, time.Now())

		assert.ErrorIs(t, err, order.ErrCargoDescriptionTooLong)
	})
}

func TestOrder_OpenBidding(t *testing.T) {
	t.Run("should move pending order to bidding and stamp the deadline", func(t *testing.T) {
		o := validOrder(t)
		closesAt := time.Now().UTC().Add(30 * time.Minute)

		require.NoError(t, o.OpenBidding(closesAt))

		assert.Equal(t, order.Bidding, o.Status())
		require.NotNil(t, o.BiddingClosesAt())
		assert.True(t, o.BiddingClosesAt().Equal(closesAt))
	})

	t.Run("should fail when bidding already open", func(t *testing.T) {
		o := openedOrder(t)

		err := o.OpenBidding(time.Now().UTC())

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("should assign driver and bid, fixing the final price", func(t *testing.T) {
		o, driverID, bidID := assignedOrder(t)

		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.AssignedDriver())
		assert.True(t, o.AssignedDriver().IsEqual(driverID))
		require.NotNil(t, o.AssignedBid())
		assert.True(t, o.AssignedBid().IsEqual(bidID))
		require.NotNil(t, o.FinalPrice())
		assert.Equal(t, int64(9000), o.FinalPrice().Amount())
	})

	t.Run("should fail when another bid is already assigned", func(t *testing.T) {
		o, _, _ := assignedOrder(t)
		price, _ := kernel.NewMoney(8000, "ETB")

		err := o.Assign(kernel.NewUUID(), kernel.NewUUID(), price)

		assert.ErrorIs(t, err, order.ErrAlreadyAssigned)
	})

	t.Run("should fail on a pending order", func(t *testing.T) {
		o := validOrder(t)
		price, _ := kernel.NewMoney(8000, "ETB")

		err := o.Assign(kernel.NewUUID(), kernel.NewUUID(), price)

		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Unassign(t *testing.T) {
	t.Run("should revert accepted order to bidding", func(t *testing.T) {
		o, _, _ := assignedOrder(t)

		require.NoError(t, o.Unassign())

		assert.Equal(t, order.Bidding, o.Status())
		assert.Nil(t, o.AssignedDriver())
		assert.Nil(t, o.AssignedBid())
		assert.Nil(t, o.FinalPrice())
	})

	t.Run("should fail on a non-accepted order", func(t *testing.T) {
		o := openedOrder(t)

		assert.ErrorIs(t, o.Unassign(), order.ErrInvalidTransition)
	})
}

func TestOrder_Progress(t *testing.T) {
	t.Run("should walk accepted order through pickup, transit and delivery", func(t *testing.T) {
		o, _, _ := assignedOrder(t)

		require.NoError(t, o.StartPickup())
		assert.Equal(t, order.Pickup, o.Status())

		require.NoError(t, o.StartTransit())
		assert.Equal(t, order.InTransit, o.Status())

		require.NoError(t, o.Complete())
		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("should reject skipping a stage", func(t *testing.T) {
		o, _, _ := assignedOrder(t)

		assert.ErrorIs(t, o.StartTransit(), order.ErrInvalidTransition)
		assert.ErrorIs(t, o.Complete(), order.ErrInvalidTransition)
	})

	t.Run("should reject progress before acceptance", func(t *testing.T) {
		o := openedOrder(t)

		assert.ErrorIs(t, o.StartPickup(), order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel an order at any active stage", func(t *testing.T) {
		o, _, _ := assignedOrder(t)
		require.NoError(t, o.StartPickup())

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.AssignedDriver())
		assert.Nil(t, o.AssignedBid())
	})

	t.Run("should cancel a pending order", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should fail on a delivered order", func(t *testing.T) {
		o, _, _ := assignedOrder(t)
		require.NoError(t, o.StartPickup())
		require.NoError(t, o.StartTransit())
		require.NoError(t, o.Complete())

		assert.ErrorIs(t, o.Cancel(), order.ErrInvalidTransition)
	})
}

func TestOrder_DeclineExpired(t *testing.T) {
	t.Run("should decline a bidding order", func(t *testing.T) {
		o := openedOrder(t)

		require.NoError(t, o.DeclineExpired())
		assert.Equal(t, order.Declined, o.Status())
	})

	t.Run("should decline a pending order that never opened bidding", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.DeclineExpired())
		assert.Equal(t, order.Declined, o.Status())
	})

	t.Run("should fail on an accepted order", func(t *testing.T) {
		o, _, _ := assignedOrder(t)

		assert.ErrorIs(t, o.DeclineExpired(), order.ErrInvalidTransition)
	})
}

func TestOrder_BiddingExpired(t *testing.T) {
	t.Run("should use the bidding deadline once bidding opened", func(t *testing.T) {
		o := validOrder(t)
		closesAt := time.Now().UTC().Add(10 * time.Minute)
		require.NoError(t, o.OpenBidding(closesAt))

		assert.False(t, o.BiddingExpired(closesAt.Add(-time.Minute)))
		assert.True(t, o.BiddingExpired(closesAt.Add(time.Minute)))
	})

	t.Run("should fall back to the scheduled pickup before bidding opened", func(t *testing.T) {
		o := validOrder(t)

		assert.False(t, o.BiddingExpired(time.Now().UTC()))
		assert.True(t, o.BiddingExpired(o.ScheduledAt().Add(time.Minute)))
	})
}

func TestOrder_AskingPrice(t *testing.T) {
	t.Run("should return base price before assignment", func(t *testing.T) {
		o := validOrder(t)

		assert.Equal(t, int64(10000), o.AskingPrice().Amount())
	})

	t.Run("should return final price after assignment", func(t *testing.T) {
		o, _, _ := assignedOrder(t)

		assert.Equal(t, int64(9000), o.AskingPrice().Amount())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore an assigned order", func(t *testing.T) {
		pickup, _ := kernel.NewAddress("A")
		destination, _ := kernel.NewAddress("B")
		basePrice, _ := kernel.NewMoney(10000, "ETB")
		finalPrice, _ := kernel.NewMoney(9000, "ETB")
		driverID := kernel.NewUUID()
		bidID := kernel.NewUUID()
		closesAt := time.Now().UTC()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			pickup, destination, "cement", order.TruckClassHeavy,
			basePrice, &finalPrice, order.Accepted,
			time.Now().UTC(), &closesAt, &driverID, &bidID,
			time.Now().UTC(), time.Now().UTC(),
		)

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.AssignedDriver())
		assert.True(t, o.AssignedDriver().IsEqual(driverID))
	})

	t.Run("should reject accepted status without a driver", func(t *testing.T) {
		pickup, _ := kernel.NewAddress("A")
		destination, _ := kernel.NewAddress("B")
		basePrice, _ := kernel.NewMoney(10000, "ETB")

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			pickup, destination, "", order.TruckClassMini,
			basePrice, nil, order.Accepted,
			time.Now().UTC(), nil, nil, nil,
			time.Now().UTC(), time.Now().UTC(),
		)

		require.Error(t, err)
	})

	t.Run("should reject a driver on a pending order", func(t *testing.T) {
		pickup, _ := kernel.NewAddress("A")
		destination, _ := kernel.NewAddress("B")
		basePrice, _ := kernel.NewMoney(10000, "ETB")
		driverID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			pickup, destination, "", order.TruckClassMini,
			basePrice, nil, order.Pending,
			time.Now().UTC(), nil, &driverID, nil,
			time.Now().UTC(), time.Now().UTC(),
		)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for nil and zero-value orders", func(t *testing.T) {
		var o *order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

		assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}
