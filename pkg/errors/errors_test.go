package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCollabMissing, "library not found")

	assert.Equal(t, ErrCollabMissing, err.Code)
	assert.Contains(t, err.Error(), "COLLAB_MISSING")
	assert.Contains(t, err.Error(), "library not found")
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := Wrap(inner, ErrFileCopy, "failed to copy bashrc")

	require.NotNil(t, err)
	assert.Equal(t, inner, err.Unwrap())
	assert.Contains(t, err.Error(), "permission denied")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrFileCopy, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrFileCopy, "nothing %s", "here"))
}

func TestIsMatchesByCode(t *testing.T) {
	err := Newf(ErrNoBackup, "no backup for %s", "/home/u/.bashrc")

	assert.True(t, IsCode(err, ErrNoBackup))
	assert.False(t, IsCode(err, ErrRestore))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(ErrNoBackup, "no backup")
	outer := fmt.Errorf("uninstall: %w", inner)

	assert.True(t, IsCode(outer, ErrNoBackup))
}

func TestCode(t *testing.T) {
	assert.Equal(t, ErrDirCreate, Code(New(ErrDirCreate, "mkdir failed")))
	assert.Equal(t, ErrUnknown, Code(fmt.Errorf("plain error")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrConfigInvalid, "bad manifest").WithDetail("file", "dotbash.toml")

	assert.Equal(t, "dotbash.toml", err.Details["file"])
}
