package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T, balance string) *driver.DeliveryPerson {
	t.Helper()
	dp, err := driver.RestoreDeliveryPerson(kernel.NewUUID(), kernel.NewUUID(), "Driver", "", true,
		decimal.RequireFromString(balance), nil)
	require.NoError(t, err)
	return dp
}

func deliveredOrder(t *testing.T, deliverer *driver.DeliveryPerson) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, "parcel", order.Notes{}, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Accept(deliverer.ID()))
	require.NoError(t, o.Deliver(time.Now()))
	return o
}

func TestReferralLedger_ApplyDeliveryCompletion(t *testing.T) {
	ledger := services.NewReferralLedger()

	t.Run("charges the fee and credits a different referrer", func(t *testing.T) {
		deliverer := newDriver(t, "10.00")
		referrer := newDriver(t, "5.00")
		o := deliveredOrder(t, deliverer)

		settlement, err := ledger.ApplyDeliveryCompletion(o, deliverer, referrer)

		require.NoError(t, err)
		assert.Equal(t, services.Settlement{ReferrerCredited: true}, settlement)
		assert.Equal(t, "7", deliverer.Balance().String())
		assert.Equal(t, "6", referrer.Balance().String())
		assert.True(t, deliverer.IsAvailable())
	})

	t.Run("deliverer at the floor becomes unavailable", func(t *testing.T) {
		deliverer := newDriver(t, "6.00")
		o := deliveredOrder(t, deliverer)

		settlement, err := ledger.ApplyDeliveryCompletion(o, deliverer, nil)

		require.NoError(t, err)
		assert.True(t, settlement.DelivererDisabled)
		assert.False(t, settlement.ReferrerCredited)
		assert.True(t, deliverer.Balance().Equal(driver.AvailabilityFloor))
		assert.False(t, deliverer.IsAvailable())
	})

	t.Run("self referral earns no bonus", func(t *testing.T) {
		deliverer := newDriver(t, "10.00")
		o := deliveredOrder(t, deliverer)

		settlement, err := ledger.ApplyDeliveryCompletion(o, deliverer, deliverer)

		require.NoError(t, err)
		assert.False(t, settlement.ReferrerCredited)
		assert.Equal(t, "7", deliverer.Balance().String())
	})

	t.Run("order must be delivered", func(t *testing.T) {
		deliverer := newDriver(t, "10.00")
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, "parcel", order.Notes{}, time.Now())
		require.NoError(t, err)
		require.NoError(t, o.Accept(deliverer.ID()))

		_, err = ledger.ApplyDeliveryCompletion(o, deliverer, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "10", deliverer.Balance().String())
	})

	t.Run("deliverer must be the assigned driver", func(t *testing.T) {
		assigned := newDriver(t, "10.00")
		other := newDriver(t, "10.00")
		o := deliveredOrder(t, assigned)

		_, err := ledger.ApplyDeliveryCompletion(o, other, nil)

		require.ErrorIs(t, err, services.ErrDelivererIsNotAssigned)
		assert.Equal(t, "10", other.Balance().String())
	})
}
