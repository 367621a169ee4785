package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithExplicitRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvCommonCore, "")

	root := t.TempDir()
	p, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, root, p.DotfilesRoot())
	assert.False(t, p.UsedFallback())
	assert.Equal(t, home, p.HomeDir())
	assert.Equal(t, filepath.Join(home, ConfigScriptsDirName), p.ConfigDir())
	assert.Equal(t, filepath.Join(home, CollabDirName), p.CollabDir())
	assert.Equal(t, filepath.Join(home, CollabDirName, CollabEntryName), p.CollabEntryPath())
}

func TestNewRespectsEnvRoot(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	root := t.TempDir()
	t.Setenv(EnvDotfilesRoot, root)

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, root, p.DotfilesRoot())
	assert.False(t, p.UsedFallback())
}

func TestCollabDirOverride(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	collabDir := t.TempDir()
	t.Setenv(EnvCommonCore, collabDir)

	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, collabDir, p.CollabDir())
}

func TestSourcePath(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	root := t.TempDir()

	p, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "bashrc"), p.SourcePath("bashrc"))
}

func TestStateDirHonorsXDGStateHome(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(stateHome, DotbashDirName), p.StateDir())
	assert.Equal(t, filepath.Join(stateHome, DotbashDirName, LogFileName), p.LogFilePath())
}

func TestDataDirOverride(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	dataDir := t.TempDir()
	t.Setenv(EnvDataDir, dataDir)

	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, dataDir, p.DataDir())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "dotfiles"), expandHome("~/dotfiles"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
	assert.Equal(t, "", expandHome(""))
}
