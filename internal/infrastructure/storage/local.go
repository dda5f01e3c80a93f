// Package storage implements the asset store on the local filesystem.
// Handles are content-derived (sha256 of the payload plus the original file
// extension), so re-uploading identical bytes maps to the same file.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/storekit/catalog-api/internal/core/domain"
)

// publicPrefix is the URL path the router serves the asset directory under.
const publicPrefix = "/storage/productImage"

type LocalAssetStore struct {
	dir string
}

// NewLocalAssetStore creates the backing directory when missing.
func NewLocalAssetStore(dir string) (*LocalAssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &LocalAssetStore{dir: dir}, nil
}

// Dir returns the directory assets are written to, for static serving.
func (s *LocalAssetStore) Dir() string {
	return s.dir
}

func (s *LocalAssetStore) Store(_ context.Context, filename string, data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", domain.ErrInvalidAsset
	}

	sum := sha256.Sum256(data)
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = mtype.Extension()
	}
	handle := hex.EncodeToString(sum[:]) + ext

	if err := os.WriteFile(filepath.Join(s.dir, handle), data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return handle, nil
}

// Delete is idempotent: a missing handle is not an error.
func (s *LocalAssetStore) Delete(_ context.Context, handle string) error {
	// Reject anything that could escape the asset directory.
	if handle != filepath.Base(handle) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, handle)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

func (s *LocalAssetStore) URLFor(handle string) string {
	return publicPrefix + "/" + handle
}
