// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audtrim/trim"
)

// LocalStore keeps artifacts in a directory and links to them under a
// public base URL.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates dir if needed. An empty dir means a directory
// under os.TempDir().
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "audtrim")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the artifact directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data to <dir>/<uuid>/<name>.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (trim.Artifact, error) {
	select {
	case <-ctx.Done():
		return trim.Artifact{}, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	key := newKey(name)
	prefix, file, _ := splitKey(key)

	folder := filepath.Join(s.dir, prefix)
	if err := os.Mkdir(folder, 0o750); err != nil {
		return trim.Artifact{}, fmt.Errorf("create artifact folder: %w", err)
	}
	if err := os.WriteFile(filepath.Join(folder, file), data, 0o640); err != nil {
		_ = os.RemoveAll(folder)
		return trim.Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	return trim.Artifact{
		Key:  key,
		URL:  s.baseURL + "/" + prefix + "/" + url.PathEscape(file),
		Name: file,
		Size: len(data),
	}, nil
}

// Delete removes the artifact and its folder. Deleting a missing artifact
// is not an error.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	prefix, _, err := splitKey(key)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.dir, prefix)); err != nil {
		return fmt.Errorf("remove artifact %s: %w", key, err)
	}
	return nil
}
