// Package util holds helpers for building object store keys.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that are blank or try to escape
// their directory.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameLen = 128

// OwnerDir maps a user id to a directory name that reveals nothing about the
// id. Uploads without an owner share the "anonymous" directory.
func OwnerDir(owner string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(owner))
	return hex.EncodeToString(sum[:16])
}

// CleanFileName flattens separators, drops control characters and caps the
// length while keeping the extension.
func CleanFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameLen {
		ext := ""
		if i := strings.LastIndexByte(s, '.'); i > 0 && len(s)-i <= 10 {
			ext = s[i:]
		}
		s = s[:maxFileNameLen-len(ext)] + ext
	}
	return s, nil
}
