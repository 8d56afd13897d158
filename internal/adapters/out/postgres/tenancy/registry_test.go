package tenancy_test

import (
	"errors"
	"testing"

	"logistics/internal/adapters/out/postgres/tenancy"
	"logistics/internal/pkg/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fakeOpener(opened *[]string) tenancy.Opener {
	return func(dsn string) (*gorm.DB, error) {
		*opened = append(*opened, dsn)
		if dsn == "broken" {
			return nil, errors.New("connection refused")
		}
		return &gorm.DB{}, nil
	}
}

func TestRegistry(t *testing.T) {
	var opened []string
	registry, err := tenancy.NewRegistry([]tenancy.Tenant{
		{ID: "bravo", Domain: "bravo.example.com", DSN: "dsn-bravo"},
		{ID: "alpha", Domain: "alpha.example.com", DSN: "dsn-alpha"},
		{ID: "down", Domain: "down.example.com", DSN: "broken"},
	}, fakeOpener(&opened))
	require.NoError(t, err)

	t.Run("lookup by domain", func(t *testing.T) {
		id, ok := registry.Lookup("alpha.example.com")
		assert.True(t, ok)
		assert.Equal(t, tenant.ID("alpha"), id)

		_, ok = registry.Lookup("evil.example.com")
		assert.False(t, ok)
	})

	t.Run("tenants are sorted", func(t *testing.T) {
		assert.Equal(t, []tenant.ID{"alpha", "bravo", "down"}, registry.Tenants())
	})

	t.Run("database opened once per tenant", func(t *testing.T) {
		ctx := tenant.WithTenant(t.Context(), "alpha")

		first, err := registry.DB(ctx)
		require.NoError(t, err)
		second, err := registry.DB(ctx)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, []string{"dsn-alpha"}, opened)
	})

	t.Run("context without tenant", func(t *testing.T) {
		_, err := registry.DB(t.Context())
		require.ErrorIs(t, err, tenant.ErrNoTenant)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		_, err := registry.Open("ghost")
		require.ErrorIs(t, err, tenancy.ErrUnknownTenant)
	})

	t.Run("open failure is not cached", func(t *testing.T) {
		_, err := registry.Open("down")
		require.Error(t, err)
		_, err = registry.Open("down")
		require.Error(t, err)
		assert.Equal(t, 2, countOf(opened, "broken"))
	})
}

func TestNewRegistry_Validation(t *testing.T) {
	_, err := tenancy.NewRegistry(nil, tenancy.OpenPostgres)
	require.Error(t, err)

	_, err = tenancy.NewRegistry([]tenancy.Tenant{
		{ID: "a", Domain: "same.example.com", DSN: "x"},
		{ID: "b", Domain: "same.example.com", DSN: "y"},
	}, tenancy.OpenPostgres)
	require.Error(t, err)

	_, err = tenancy.NewRegistry([]tenancy.Tenant{{ID: "a", Domain: "a.example.com"}}, tenancy.OpenPostgres)
	require.Error(t, err)

	_, err = tenancy.NewRegistry([]tenancy.Tenant{
		{ID: "a", Domain: "a.example.com", DSN: "x"},
		{ID: "a", Domain: "a2.example.com", DSN: "y"},
	}, tenancy.OpenPostgres)
	require.Error(t, err)
}

func TestNewRegistry_AliasDomains(t *testing.T) {
	registry, err := tenancy.NewRegistry([]tenancy.Tenant{
		{ID: "edu", Domain: "https://edu.example.com", DSN: "dsn-edu"},
		{ID: "edu", Domain: "https://edu-app.example.com", DSN: "dsn-edu"},
	}, tenancy.OpenPostgres)
	require.NoError(t, err)

	first, ok := registry.Lookup("https://edu.example.com")
	require.True(t, ok)
	second, ok := registry.Lookup("https://edu-app.example.com")
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, []tenant.ID{"edu"}, registry.Tenants())
}

func countOf(values []string, want string) int {
	n := 0
	for _, v := range values {
		if v == want {
			n++
		}
	}
	return n
}
