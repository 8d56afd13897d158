package client_test

import (
	"strings"
	"testing"

	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	addedBy := kernel.NewUUID()

	c, err := client.NewClient(kernel.NewUUID(), client.Details{
		Phone:   " 0612345678 ",
		Name:    "Nadia",
		Address: "12 rue des Lilas",
	}, addedBy)

	require.NoError(t, err)
	assert.Equal(t, "0612345678", c.Phone())
	assert.Equal(t, "Nadia", c.Name())
	assert.True(t, c.AddedBy().IsEqual(addedBy))
}

func TestNewClient_FieldErrors(t *testing.T) {
	_, err := client.NewClient(kernel.NewUUID(), client.Details{
		Phone:   strings.Repeat("1", 21),
		Address: strings.Repeat("a", 501),
	}, kernel.UUID{})

	require.Error(t, err)
	fields := errs.FieldErrors(err)
	assert.Equal(t, "must be at most 20 characters", fields["client_phone"])
	assert.Equal(t, "value is required", fields["client_name"])
	assert.Equal(t, "must be at most 500 characters", fields["client_address"])
	assert.Contains(t, fields, "added_by")
}
