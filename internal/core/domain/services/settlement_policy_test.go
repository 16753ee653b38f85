package services_test

import (
	"testing"

	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementPolicy_CommitmentFee(t *testing.T) {
	policy := services.NewSettlementPolicy()

	t.Run("should hold forty percent of the base price", func(t *testing.T) {
		basePrice, _ := kernel.NewMoney(10000, "ETB")

		fee, err := policy.CommitmentFee(basePrice)

		require.NoError(t, err)
		assert.Equal(t, int64(4000), fee.Amount())
		assert.Equal(t, "ETB", fee.Currency())
	})

	t.Run("should truncate fractional fees", func(t *testing.T) {
		basePrice, _ := kernel.NewMoney(99, "ETB")

		fee, err := policy.CommitmentFee(basePrice)

		require.NoError(t, err)
		assert.Equal(t, int64(39), fee.Amount())
	})

	t.Run("should fail for unconstructed price", func(t *testing.T) {
		var zero kernel.Money

		_, err := policy.CommitmentFee(zero)

		assert.Error(t, err)
	})
}

func TestSettlementPolicy_DeliveryOutcome(t *testing.T) {
	policy := services.NewSettlementPolicy()

	outcome := policy.DeliveryOutcome()

	assert.Equal(t, escrow.OperationRefund, outcome.FeeOp)
	assert.Equal(t, escrow.OperationCapture, outcome.FareOp)
	assert.Equal(t, int64(100), outcome.FareCapturePercent)
}

func TestSettlementPolicy_CancellationOutcome(t *testing.T) {
	policy := services.NewSettlementPolicy()

	t.Run("driver cancellation forfeits the fee at every active stage", func(t *testing.T) {
		for _, status := range []order.Status{order.Accepted, order.Pickup, order.InTransit} {
			outcome, err := policy.CancellationOutcome(status, order.ActorDriver)

			require.NoError(t, err, status.String())
			assert.Equal(t, escrow.OperationForfeit, outcome.FeeOp)
			assert.Equal(t, escrow.OperationRefund, outcome.FareOp)
		}
	})

	t.Run("customer cancellation before pickup refunds both holds", func(t *testing.T) {
		outcome, err := policy.CancellationOutcome(order.Accepted, order.ActorCustomer)

		require.NoError(t, err)
		assert.Equal(t, escrow.OperationRefund, outcome.FeeOp)
		assert.Equal(t, escrow.OperationRefund, outcome.FareOp)
	})

	t.Run("customer cancellation at or after pickup captures half the fare", func(t *testing.T) {
		for _, status := range []order.Status{order.Pickup, order.InTransit} {
			outcome, err := policy.CancellationOutcome(status, order.ActorCustomer)

			require.NoError(t, err, status.String())
			assert.Equal(t, escrow.OperationRefund, outcome.FeeOp)
			assert.Equal(t, escrow.OperationCapture, outcome.FareOp)
			assert.Equal(t, int64(services.MidTripFareCapturePercent), outcome.FareCapturePercent)
		}
	})

	t.Run("operator cancellation refunds both holds", func(t *testing.T) {
		for _, status := range []order.Status{order.Accepted, order.Pickup, order.InTransit} {
			outcome, err := policy.CancellationOutcome(status, order.ActorOperator)

			require.NoError(t, err, status.String())
			assert.Equal(t, escrow.OperationRefund, outcome.FeeOp)
			assert.Equal(t, escrow.OperationRefund, outcome.FareOp)
		}
	})

	t.Run("statuses without escrow entries have no outcome", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Bidding, order.Delivered, order.Cancelled} {
			_, err := policy.CancellationOutcome(status, order.ActorCustomer)

			assert.ErrorIs(t, err, services.ErrNoSettlementForStatus, status.String())
		}
	})

	t.Run("should reject an unknown actor", func(t *testing.T) {
		_, err := policy.CancellationOutcome(order.Accepted, order.ActorUnknown)

		assert.Error(t, err)
	})
}
