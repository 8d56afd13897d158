package actor_test

import (
	"testing"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_Labels(t *testing.T) {
	tests := []struct {
		identity actor.Identity
		role     account.Role
		label    string
		staff    bool
	}{
		{actor.Admin{User: kernel.NewUUID()}, account.RoleAdmin, "Admin", true},
		{actor.Partner{User: kernel.NewUUID(), Name: "Chez Ali"}, account.RolePartner, "Partner - Chez Ali", false},
		{actor.Employee{User: kernel.NewUUID(), Name: "Lina"}, account.RoleEmployee, "Employee - Lina", true},
		{actor.DeliveryPerson{User: kernel.NewUUID(), Name: "Sam"}, account.RoleDeliveryPerson, "Driver - Sam", false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.role, tt.identity.Role())
			assert.Equal(t, tt.label, tt.identity.Label())
			assert.Equal(t, tt.staff, actor.IsStaff(tt.identity))
		})
	}
}

func TestContext(t *testing.T) {
	_, ok := actor.FromContext(t.Context())
	assert.False(t, ok)

	admin := actor.Admin{User: kernel.NewUUID()}
	ctx := actor.WithIdentity(t.Context(), admin)

	got, ok := actor.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, admin, got)
}
