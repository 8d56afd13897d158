package driver_test

import (
	"strings"
	"testing"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDriver(t *testing.T, balance string, available bool) *driver.DeliveryPerson {
	t.Helper()
	dp, err := driver.RestoreDeliveryPerson(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Sam Rider",
		"+15550100",
		available,
		decimal.RequireFromString(balance),
		nil,
	)
	require.NoError(t, err)
	return dp
}

func TestNewDeliveryPerson(t *testing.T) {
	t.Run("starts unavailable with the initial balance", func(t *testing.T) {
		dp, err := driver.NewDeliveryPerson(kernel.NewUUID(), kernel.NewUUID(), " Sam ", "+15550100", decimal.NewFromInt(10))

		require.NoError(t, err)
		require.NoError(t, dp.Validate())
		assert.Equal(t, "Sam", dp.Name())
		assert.False(t, dp.IsAvailable())
		assert.True(t, dp.Balance().Equal(decimal.NewFromInt(10)))
		assert.Nil(t, dp.Location())
	})

	t.Run("joins field errors", func(t *testing.T) {
		dp, err := driver.NewDeliveryPerson(kernel.NewUUID(), kernel.UUID{}, "", strings.Repeat("9", 21), decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.Nil(t, dp)
		fields := errs.FieldErrors(err)
		assert.Contains(t, fields, "user_id")
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "phone")
		assert.Contains(t, fields, "balance")
	})
}

func TestDeliveryPerson_ZeroValue(t *testing.T) {
	var dp driver.DeliveryPerson
	require.ErrorIs(t, dp.Validate(), driver.ErrDeliveryPersonIsNotConstructed)
}

func TestDeliveryPerson_ChargeDeliveryFee(t *testing.T) {
	tests := []struct {
		name          string
		balance       string
		wantBalance   string
		wantAvailable bool
		wantSwitched  bool
	}{
		{"stays available above the floor", "10.00", "7.00", true, false},
		{"exactly the floor switches off", "6.00", "3.00", false, true},
		{"below the floor switches off", "5.00", "2.00", false, true},
		{"balance may go negative", "1.00", "-2.00", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dp := restoreDriver(t, tt.balance, true)

			switched := dp.ChargeDeliveryFee()

			assert.Equal(t, tt.wantSwitched, switched)
			assert.True(t, dp.Balance().Equal(decimal.RequireFromString(tt.wantBalance)), dp.Balance().String())
			assert.Equal(t, tt.wantAvailable, dp.IsAvailable())
		})
	}
}

func TestDeliveryPerson_Credit(t *testing.T) {
	dp := restoreDriver(t, "2.50", false)

	require.NoError(t, dp.Credit(driver.ReferralBonus))
	assert.True(t, dp.Balance().Equal(decimal.RequireFromString("3.50")))
	assert.False(t, dp.IsAvailable())

	require.ErrorIs(t, dp.Credit(decimal.Zero), errs.ErrValueIsInvalid)
}

func TestDeliveryPerson_RequestAvailability(t *testing.T) {
	t.Run("granted above the floor", func(t *testing.T) {
		dp := restoreDriver(t, "3.01", false)
		assert.True(t, dp.RequestAvailability(true))
		assert.True(t, dp.IsAvailable())
	})

	t.Run("forced off at the floor", func(t *testing.T) {
		dp := restoreDriver(t, "3.00", false)
		assert.False(t, dp.RequestAvailability(true))
		assert.False(t, dp.IsAvailable())
	})

	t.Run("going offline is always allowed", func(t *testing.T) {
		dp := restoreDriver(t, "50", true)
		assert.False(t, dp.RequestAvailability(false))
	})
}

func TestDeliveryPerson_RestoreAvailability(t *testing.T) {
	dp := restoreDriver(t, "1.00", false)

	dp.RestoreAvailability()
	assert.True(t, dp.IsAvailable())

	assert.True(t, dp.EnforceBalanceFloor())
	assert.False(t, dp.IsAvailable())
	assert.False(t, dp.EnforceBalanceFloor())
}

func TestDeliveryPerson_MoveTo(t *testing.T) {
	dp := restoreDriver(t, "10", true)
	point, err := kernel.NewGeoPoint(48.85, 2.35)
	require.NoError(t, err)

	require.NoError(t, dp.MoveTo(point))
	require.NotNil(t, dp.Location())
	assert.True(t, dp.Location().IsEqual(point))

	require.ErrorIs(t, dp.MoveTo(kernel.GeoPoint{}), errs.ErrValueIsRequired)
}

func TestDeliveryPerson_UpdateProfile(t *testing.T) {
	dp := restoreDriver(t, "10", true)
	name := "Samira"

	require.NoError(t, dp.UpdateProfile(&name, nil))
	assert.Equal(t, "Samira", dp.Name())
	assert.Equal(t, "+15550100", dp.Phone())

	empty := ""
	require.ErrorIs(t, dp.UpdateProfile(&empty, nil), errs.ErrValueIsRequired)
}
