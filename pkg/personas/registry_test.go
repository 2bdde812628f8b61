package personas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Builtins(t *testing.T) {
	r := NewRegistry()

	p, ok := r.Persona("student (beginner)")
	require.True(t, ok)
	assert.NotEmpty(t, p.Description)

	role, ok := r.Role("project_manager")
	require.True(t, ok)
	assert.NotEmpty(t, role.Description)

	assert.Len(t, r.Personas(), 3)
	assert.Len(t, r.Roles(), 3)
}

func TestLoadFile_MergesAndOverrides(t *testing.T) {
	content := `
personas:
  - name: student (beginner)
    description: Overridden description
  - name: code reviewer
    description: Reviews answers critically
roles:
  - name: security_auditor
    description: Attack surface and dependency risks
`
	path := filepath.Join(t.TempDir(), "personas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r := NewRegistry()
	require.NoError(t, r.LoadFile(path))

	// Override wins
	p, ok := r.Persona("student (beginner)")
	require.True(t, ok)
	assert.Equal(t, "Overridden description", p.Description)

	// New entries merged
	_, ok = r.Persona("code reviewer")
	assert.True(t, ok)
	_, ok = r.Role("security_auditor")
	assert.True(t, ok)

	// Builtins without overrides untouched
	assert.Len(t, r.Personas(), 4)
	assert.Len(t, r.Roles(), 4)
}

func TestLoadFile_RejectsNamelessEntry(t *testing.T) {
	content := `
personas:
  - description: who am I
`
	path := filepath.Join(t.TempDir(), "personas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r := NewRegistry()
	assert.Error(t, r.LoadFile(path))
}

func TestLoadFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personas: [unclosed"), 0644))

	r := NewRegistry()
	assert.Error(t, r.LoadFile(path))
}

func TestRegistry_SortedListings(t *testing.T) {
	r := NewRegistry()
	roles := r.Roles()
	require.Len(t, roles, 3)
	assert.Equal(t, "beginner", roles[0].Name)
	assert.Equal(t, "developer", roles[1].Name)
	assert.Equal(t, "project_manager", roles[2].Name)
}
