package kernel_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(36.8065, 10.1815)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 36.8065, p.Latitude(), 1e-9)
		assert.InDelta(t, 10.1815, p.Longitude(), 1e-9)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(-90, 180)

		require.NoError(t, err)
	})

	t.Run("both coordinates out of range are reported per field", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, -181)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		fields := errs.FieldErrors(err)
		assert.Contains(t, fields, "latitude")
		assert.Contains(t, fields, "longitude")
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, p.Validate())
	})
}
