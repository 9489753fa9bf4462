// SPDX-License-Identifier: EPL-2.0

// Package storage publishes trimmed WAV files where users can download
// them. Both stores implement trim.Publisher: LocalStore writes to a
// directory served by the HTTP server, S3Store uploads to a bucket.
package storage

import (
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ik5/audtrim/trim"
)

// ErrInvalidKey is returned for keys this package did not produce.
var ErrInvalidKey = errors.New("storage: invalid artifact key")

var (
	_ trim.Publisher = (*LocalStore)(nil)
	_ trim.Publisher = (*S3Store)(nil)
)

// newKey places name under a fresh random prefix so concurrent uploads of
// the same name never collide and the download keeps its file name.
func newKey(name string) string {
	return uuid.NewString() + "/" + cleanName(name)
}

// splitKey checks that key is "<uuid>/<name>" and returns both halves.
func splitKey(key string) (prefix, name string, err error) {
	prefix, name, ok := strings.Cut(key, "/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", "", ErrInvalidKey
	}
	if _, err := uuid.Parse(prefix); err != nil {
		return "", "", ErrInvalidKey
	}
	return prefix, name, nil
}

func cleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return "trimmed.wav"
	}
	return name
}
