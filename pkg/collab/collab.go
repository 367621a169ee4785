// Package collab activates the common-core shell library dotbash depends on
// and provides the file-manipulation primitives of its contract: copy with
// backup, restore from backup, and external-command probing.
//
// The library itself is shell code consumed by the installed dotfiles at
// runtime; dotbash performs the equivalent file operations natively but uses
// the same backup naming, so backups created by either side are recoverable
// by the other.
package collab

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/arthur-debert/dotbash/pkg/errors"
	"github.com/arthur-debert/dotbash/pkg/logging"
	"github.com/arthur-debert/dotbash/pkg/paths"
	"github.com/arthur-debert/dotbash/pkg/ui"
)

// BackupSuffix separates a destination path from its backup timestamp
const BackupSuffix = ".old."

// backupStamp is the timestamp layout appended to backups. Fixed width, so
// lexicographic order is chronological order.
const backupStamp = "20060102150405"

// RequiredPrimitives are the shell functions the common-core entry point
// must define. A library missing any of them is treated as absent.
var RequiredPrimitives = []string{
	"cmd_exists",
	"copy_with_backup",
	"restore_from_backup",
	"log_info",
	"log_warn",
	"log_fail",
	"log_pass",
	"log_debug",
}

// Collaborator is the narrow interface the executors consume
type Collaborator interface {
	// CmdExists reports whether an external binary is on PATH
	CmdExists(name string) bool

	// CopyWithBackup copies src over dst. A pre-existing dst is preserved
	// as a timestamped backup before the overwrite.
	CopyWithBackup(src, dst string) error

	// RestoreFromBackup renames the most recent backup for dst back into
	// place and returns the backup path it consumed. Returns an
	// errors.ErrNoBackup error when dst has no backups.
	RestoreFromBackup(dst string) (string, error)
}

type fsCollaborator struct {
	diag ui.Diag
	now  func() time.Time
}

// New returns a Collaborator operating directly on the filesystem.
// Load is the production entry point; New exists for callers that have
// already validated the library (and for tests).
func New(diag ui.Diag) Collaborator {
	return &fsCollaborator{diag: diag, now: time.Now}
}

// Load verifies the common-core library at dir and activates the
// collaborator. Verification is defensive: the entry point is scanned for
// every required primitive, and a library that is present but incomplete
// fails closed, exactly as if it were absent.
func Load(dir string, diag ui.Diag) (Collaborator, error) {
	logger := logging.GetLogger("collab")

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrCollabMissing,
			"common-core library directory not found at %s (clone it there or set %s)", dir, paths.EnvCommonCore)
	}

	entry := filepath.Join(dir, paths.CollabEntryName)
	data, err := os.ReadFile(entry)
	if err != nil {
		return nil, errors.Newf(errors.ErrCollabMissing,
			"common-core entry point %s not found in %s", paths.CollabEntryName, dir)
	}

	var missing []string
	for _, name := range RequiredPrimitives {
		if !definesFunction(data, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrCollabIncomplete,
			"common-core library at %s is missing required primitives: %v (update the library)", dir, missing)
	}

	logger.Debug().Str("dir", dir).Msg("collaborator loaded")
	return New(diag), nil
}

// definesFunction reports whether the shell source defines a function with
// the given name, in either `name()` or `function name` form.
func definesFunction(src []byte, name string) bool {
	pattern := fmt.Sprintf(`(?m)^\s*(function\s+%s\b|%s\s*\(\))`, regexp.QuoteMeta(name), regexp.QuoteMeta(name))
	return regexp.MustCompile(pattern).Match(src)
}

func (c *fsCollaborator) CmdExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (c *fsCollaborator) CopyWithBackup(src, dst string) error {
	logger := logging.GetLogger("collab")

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", dst)
	}

	if _, err := os.Lstat(dst); err == nil {
		backup := c.backupPath(dst)
		if err := os.Rename(dst, backup); err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "failed to back up %s", dst)
		}
		logger.Debug().Str("dst", dst).Str("backup", backup).Msg("backed up destination")
		c.diag.Debug("backed up %s -> %s", dst, backup)
	}

	if err := copyFile(src, dst); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", src, dst)
	}

	logger.Debug().Str("src", src).Str("dst", dst).Msg("copied file")
	return nil
}

func (c *fsCollaborator) RestoreFromBackup(dst string) (string, error) {
	backups, err := filepath.Glob(dst + BackupSuffix + "*")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRestore, "failed to scan backups for %s", dst)
	}
	if len(backups) == 0 {
		return "", errors.Newf(errors.ErrNoBackup, "no backup found for %s", dst)
	}

	// Fixed-width timestamps make the lexicographically greatest backup the
	// most recent one.
	sort.Strings(backups)
	latest := backups[len(backups)-1]

	if err := os.Rename(latest, dst); err != nil {
		return "", errors.Wrapf(err, errors.ErrRestore, "failed to restore %s from %s", dst, latest)
	}

	return latest, nil
}

// backupPath returns a unique timestamped backup name for dst
func (c *fsCollaborator) backupPath(dst string) string {
	ts := c.now().UTC()
	base := fmt.Sprintf("%s%s%s.%09d", dst, BackupSuffix, ts.Format(backupStamp), ts.Nanosecond())

	// Repeated overwrites within one nanosecond are not realistic, but a
	// collision must never clobber an earlier backup.
	candidate := base
	for i := 1; ; i++ {
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
