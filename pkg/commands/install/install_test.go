package install

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotbash/pkg/collab"
	"github.com/arthur-debert/dotbash/pkg/manifest"
	"github.com/arthur-debert/dotbash/pkg/paths"
	"github.com/arthur-debert/dotbash/pkg/testutil"
)

type fixture struct {
	paths    paths.Paths
	manifest *manifest.Manifest
	collab   collab.Collaborator
	diag     *testutil.RecordingDiag
	home     string
	root     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	home := t.TempDir()
	t.Setenv(paths.EnvHome, home)
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv(paths.EnvDataDir, filepath.Join(home, ".local", "share", "dotbash"))

	root := t.TempDir()
	p, err := paths.New(root)
	require.NoError(t, err)

	m, err := manifest.New(
		[]manifest.Entry{
			{Name: "bashrc", Class: manifest.ClassHomeDotfile},
			{Name: "bash.funcs.sh", Class: manifest.ClassConfigScript},
		},
		[]string{p.StateDir(), p.DataDir(), p.ConfigDir()},
		[]string{"ls", "definitely-not-a-real-binary-name"},
	)
	require.NoError(t, err)

	diag := &testutil.RecordingDiag{}
	return &fixture{
		paths:    p,
		manifest: m,
		collab:   collab.New(diag),
		diag:     diag,
		home:     home,
		root:     root,
	}
}

func (f *fixture) options() Options {
	return Options{
		Manifest:  f.manifest,
		Paths:     f.paths,
		Collab:    f.collab,
		Diag:      f.diag,
		SkipTools: true,
	}
}

func TestInstallCopiesAllEntries(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.root, "bashrc", "rc content")
	testutil.CreateFile(t, f.root, "bash.funcs.sh", "funcs content")

	result, err := Run(f.options())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"bashrc", "bash.funcs.sh"}, result.Installed)
	assert.Equal(t, "rc content", testutil.ReadFile(t, filepath.Join(f.home, ".bashrc")))
	assert.Equal(t, "funcs content", testutil.ReadFile(t, filepath.Join(f.home, ".bash.d", "bash.funcs.sh")))
}

func TestInstallCreatesRequiredDirectories(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.root, "bashrc", "x")

	_, err := Run(f.options())
	require.NoError(t, err)

	assert.DirExists(t, f.paths.StateDir())
	assert.DirExists(t, f.paths.DataDir())
	assert.DirExists(t, f.paths.ConfigDir())

	// Idempotent: a second run with the directories present still succeeds
	_, err = Run(f.options())
	assert.NoError(t, err)
}

func TestInstallOverwritesIdenticalContent(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.root, "bashrc", "same")
	testutil.CreateFile(t, f.root, "bash.funcs.sh", "same")
	dst := testutil.CreateFile(t, f.home, ".bashrc", "same")

	result, err := Run(f.options())
	require.NoError(t, err)

	// Install is content-insensitive: the matching destination was still
	// overwritten, leaving a backup behind
	assert.Contains(t, result.Installed, "bashrc")
	assert.Len(t, testutil.Backups(t, dst), 1)
}

func TestInstallBacksUpBeforeOverwrite(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.root, "bashrc", "managed")
	testutil.CreateFile(t, f.root, "bash.funcs.sh", "managed funcs")
	dst := testutil.CreateFile(t, f.home, ".bashrc", "precious original")
	dst2 := testutil.CreateFile(t, filepath.Join(f.home, ".bash.d"), "bash.funcs.sh", "old funcs")

	_, err := Run(f.options())
	require.NoError(t, err)

	backups := testutil.Backups(t, dst)
	require.Len(t, backups, 1)
	assert.Equal(t, "precious original", testutil.ReadFile(t, backups[0]))

	backups2 := testutil.Backups(t, dst2)
	require.Len(t, backups2, 1)
	assert.Equal(t, "old funcs", testutil.ReadFile(t, backups2[0]))
}

func TestInstallContinuesPastMissingSource(t *testing.T) {
	f := newFixture(t)
	// Only one of the two sources exists
	testutil.CreateFile(t, f.root, "bash.funcs.sh", "funcs")

	result, err := Run(f.options())
	require.NoError(t, err)

	assert.Equal(t, []string{"bash.funcs.sh"}, result.Installed)
	assert.Equal(t, []string{"bashrc"}, result.MissingSources)
	assert.NotEmpty(t, f.diag.BySeverity("warn"))
	assert.False(t, testutil.FileExists(t, filepath.Join(f.home, ".bashrc")))
}

func TestInstallChecksRecommendedTools(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.root, "bashrc", "x")
	testutil.CreateFile(t, f.root, "bash.funcs.sh", "y")

	opts := f.options()
	opts.SkipTools = false
	result, err := Run(opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"definitely-not-a-real-binary-name"}, result.MissingTools)
}

func TestInstallSkipToolsSuppressesAdvisories(t *testing.T) {
	f := newFixture(t)
	testutil.CreateFile(t, f.root, "bashrc", "x")
	testutil.CreateFile(t, f.root, "bash.funcs.sh", "y")

	result, err := Run(f.options())
	require.NoError(t, err)

	assert.Empty(t, result.MissingTools)
}
