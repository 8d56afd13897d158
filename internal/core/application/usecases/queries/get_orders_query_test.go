package queries_test

import (
	"testing"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery(t *testing.T) {
	admin := actor.Admin{User: kernel.NewUUID()}

	t.Run("defaults the page size", func(t *testing.T) {
		query, err := queries.NewGetOrdersQuery(admin, 0, 0)
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
	})

	t.Run("rejects drivers", func(t *testing.T) {
		_, err := queries.NewGetOrdersQuery(actor.DeliveryPerson{User: kernel.NewUUID()}, 0, 0)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("requires an actor", func(t *testing.T) {
		_, err := queries.NewGetOrdersQuery(nil, 0, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("bounds limit and offset", func(t *testing.T) {
		_, err := queries.NewGetOrdersQuery(admin, queries.MaxOrdersPageSize+1, -1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, map[string]string{
			"limit":  "must be between 1 and 200",
			"offset": "must not be negative",
		}, errs.FieldErrors(err))
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, queries.GetOrdersQuery{}.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
	})
}
