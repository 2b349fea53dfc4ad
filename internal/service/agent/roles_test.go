package agent

import (
	"testing"

	"github.com/sandevgo/medagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoles_PipelineOrder(t *testing.T) {
	roles := Roles()
	require.Len(t, roles, 6)

	wantKeys := append(append([]string{}, core.SpecialistKeys...), core.KeyTeam)
	for i, role := range roles {
		assert.Equal(t, wantKeys[i], role.Key)
		assert.NotEmpty(t, role.Name)
		assert.NotEmpty(t, role.Instructions)
	}
}
