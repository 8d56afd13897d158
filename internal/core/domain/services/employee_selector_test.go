package services_test

import (
	"testing"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomEmployeeSelector_PicksACandidate(t *testing.T) {
	candidates := make([]*account.Employee, 0, 3)
	for _, name := range []string{"Amel", "Karim", "Lina"} {
		e, err := account.RestoreEmployee(kernel.NewUUID(), kernel.NewUUID(), name, "", account.EmployeeActive)
		require.NoError(t, err)
		candidates = append(candidates, e)
	}

	selector := services.NewRandomEmployeeSelector()
	seen := make(map[string]bool)
	for range 200 {
		picked, err := selector.SelectFallbackEmployee(t.Context(), candidates)
		require.NoError(t, err)
		assert.Contains(t, candidates, picked)
		seen[picked.Name()] = true
	}

	assert.Len(t, seen, 3)
}

func TestRandomEmployeeSelector_NoCandidates(t *testing.T) {
	_, err := services.NewRandomEmployeeSelector().SelectFallbackEmployee(t.Context(), nil)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
