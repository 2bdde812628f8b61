package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotutor/repotutor/pkg/config"
)

func TestNewSession_DefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Chat.Persona = "student (advanced)"
	cfg.Chat.Role = "project_manager"

	session, err := NewSession(cfg, false)
	require.NoError(t, err)
	defer session.Close()

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "student (advanced)", session.GetPersona())
	assert.Equal(t, "project_manager", session.GetRole())
	assert.Empty(t, session.GetHistory())
}

func TestSession_HistoryAndState(t *testing.T) {
	session, err := NewSession(config.Default(), false)
	require.NoError(t, err)
	defer session.Close()

	session.AddToHistory("/load https://github.com/owner/repo")
	session.AddToHistory("what is this?")
	session.SetRepoURL("https://github.com/owner/repo")
	session.SetPersona("student (intermediate)")
	session.SetRole("beginner")

	assert.Equal(t, []string{"/load https://github.com/owner/repo", "what is this?"}, session.GetHistory())
	assert.Equal(t, "https://github.com/owner/repo", session.GetRepoURL())
	assert.Equal(t, "student (intermediate)", session.GetPersona())
	assert.Equal(t, "beginner", session.GetRole())
}

func TestSession_CloseRemovesLogsUnlessKept(t *testing.T) {
	session, err := NewSession(config.Default(), false)
	require.NoError(t, err)

	dir := session.Logger.GetSessionDir()
	require.DirExists(t, dir)

	require.NoError(t, session.Close())
	assert.NoDirExists(t, dir)
}

func TestSession_DebugModeKeepsLogs(t *testing.T) {
	session, err := NewSession(config.Default(), true)
	require.NoError(t, err)

	dir := session.Logger.GetSessionDir()
	require.NoError(t, session.Close())
	assert.DirExists(t, dir)
}
