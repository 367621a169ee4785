// Package checksum decides whether a payload file and an installed
// destination differ by content. It is a pure query: no mutation, and
// repeated calls give identical answers absent external file changes.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Comparator compares source and destination files by SHA-256 digest.
//
// DigestCapable mirrors the capability recorded by preflight. When it is
// false the comparator cannot prove equality, so it fails open: every
// destination is reported as differing and update re-copies it. Safe, not
// efficient.
type Comparator struct {
	DigestCapable bool
}

// New returns a Comparator with the given digest capability
func New(digestCapable bool) Comparator {
	return Comparator{DigestCapable: digestCapable}
}

// Differs reports whether dst must be (re-)written from src.
//
// A missing destination always differs; that covers both "never installed"
// and "deleted since install". Read errors surface as differing rather than
// silently treating the pair as equal.
func (c Comparator) Differs(src, dst string) bool {
	if _, err := os.Stat(dst); err != nil {
		return true
	}

	if !c.DigestCapable {
		return true
	}

	srcSum, err := FileDigest(src)
	if err != nil {
		return true
	}
	dstSum, err := FileDigest(dst)
	if err != nil {
		return true
	}

	return srcSum != dstSum
}

// FileDigest returns the hex-encoded SHA-256 digest of the file at path
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
