package genconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotbash/pkg/errors"
	"github.com/arthur-debert/dotbash/pkg/testutil"
)

func TestRunWritesStarterOverride(t *testing.T) {
	root := t.TempDir()

	path, err := Run(Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "dotbash.toml"), path)
	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "[files]")
	assert.Contains(t, content, "bashrc")
	assert.Contains(t, content, "[tools]")
}

func TestRunRefusesToOverwrite(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "dotbash.toml", "# mine")

	_, err := Run(Options{Root: root})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
	assert.Equal(t, "# mine", testutil.ReadFile(t, filepath.Join(root, "dotbash.toml")))
}

func TestRunForceOverwrites(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "dotbash.toml", "# mine")

	path, err := Run(Options{Root: root, Force: true})
	require.NoError(t, err)

	assert.Contains(t, testutil.ReadFile(t, path), "[files]")
}
