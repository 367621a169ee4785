package collab

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotbash/pkg/errors"
	"github.com/arthur-debert/dotbash/pkg/testutil"
)

func TestLoadSucceedsWithCompleteLibrary(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteCommonCore(t, dir)

	c, err := Load(dir, &testutil.RecordingDiag{})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestLoadFailsWhenDirectoryMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), &testutil.RecordingDiag{})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCollabMissing))
}

func TestLoadFailsWhenEntryPointMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir, &testutil.RecordingDiag{})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCollabMissing))
}

func TestLoadFailsClosedOnIncompleteLibrary(t *testing.T) {
	dir := t.TempDir()
	// A drifted library version that lost restore_from_backup
	truncated := strings.ReplaceAll(testutil.CommonCoreScript, "restore_from_backup()", "renamed_away()")
	testutil.CreateFile(t, dir, "common_core.sh", truncated)

	_, err := Load(dir, &testutil.RecordingDiag{})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCollabIncomplete))
	assert.Contains(t, err.Error(), "restore_from_backup")
}

func TestLoadAcceptsFunctionKeywordSyntax(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	for _, name := range RequiredPrimitives {
		b.WriteString("function " + name + " {\n    :\n}\n")
	}
	testutil.CreateFile(t, dir, "common_core.sh", b.String())

	_, err := Load(dir, &testutil.RecordingDiag{})
	assert.NoError(t, err)
}

func TestCopyWithBackupFreshDestination(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateFile(t, dir, "src/bashrc", "new content")
	dst := filepath.Join(dir, "home", ".bashrc")

	c := New(&testutil.RecordingDiag{})
	require.NoError(t, c.CopyWithBackup(src, dst))

	assert.Equal(t, "new content", testutil.ReadFile(t, dst))
	assert.Empty(t, testutil.Backups(t, dst))
}

func TestCopyWithBackupPreservesPriorContent(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateFile(t, dir, "src/bashrc", "new content")
	dst := testutil.CreateFile(t, dir, "home/.bashrc", "old content")

	c := New(&testutil.RecordingDiag{})
	require.NoError(t, c.CopyWithBackup(src, dst))

	assert.Equal(t, "new content", testutil.ReadFile(t, dst))

	backups := testutil.Backups(t, dst)
	require.Len(t, backups, 1)
	assert.Equal(t, "old content", testutil.ReadFile(t, backups[0]))
}

func TestRepeatedOverwritesAccumulateBackups(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateFile(t, dir, "src/bashrc", "v3")
	dst := testutil.CreateFile(t, dir, "home/.bashrc", "v1")

	c := New(&testutil.RecordingDiag{})
	require.NoError(t, c.CopyWithBackup(src, dst))
	require.NoError(t, c.CopyWithBackup(src, dst))

	assert.Len(t, testutil.Backups(t, dst), 2)
}

func TestRestoreFromBackupTakesNewest(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, ".bashrc")
	c := New(&testutil.RecordingDiag{})

	// Install twice over distinct prior contents, producing two backups
	testutil.CreateFile(t, dir, ".bashrc", "first")
	src := testutil.CreateFile(t, dir, "src", "installed")
	require.NoError(t, c.CopyWithBackup(src, dst)) // backs up "first"
	testutil.CreateFile(t, dir, "src", "installed again")
	require.NoError(t, c.CopyWithBackup(src, dst)) // backs up "installed"

	backup, err := c.RestoreFromBackup(dst)
	require.NoError(t, err)
	assert.NotEmpty(t, backup)
	assert.Equal(t, "installed", testutil.ReadFile(t, dst))

	// The older backup is still there for a second restore
	backup2, err := c.RestoreFromBackup(dst)
	require.NoError(t, err)
	assert.NotEqual(t, backup, backup2)
	assert.Equal(t, "first", testutil.ReadFile(t, dst))
}

func TestRestoreFromBackupWithoutBackup(t *testing.T) {
	dir := t.TempDir()
	dst := testutil.CreateFile(t, dir, ".bashrc", "content")

	c := New(&testutil.RecordingDiag{})
	_, err := c.RestoreFromBackup(dst)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNoBackup))
	// The destination is untouched
	assert.Equal(t, "content", testutil.ReadFile(t, dst))
}

func TestCmdExists(t *testing.T) {
	c := New(&testutil.RecordingDiag{})

	assert.True(t, c.CmdExists("ls"))
	assert.False(t, c.CmdExists("definitely-not-a-real-binary-name"))
}

func TestRoundTripRestoresOriginal(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateFile(t, dir, "src/bashrc", "managed content")
	dst := testutil.CreateFile(t, dir, "home/.bashrc", "hand-written original")

	c := New(&testutil.RecordingDiag{})
	require.NoError(t, c.CopyWithBackup(src, dst))

	_, err := c.RestoreFromBackup(dst)
	require.NoError(t, err)

	assert.Equal(t, "hand-written original", testutil.ReadFile(t, dst))
}
