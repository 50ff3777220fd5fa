// Package upload abstracts recipe image storage. The production deployment
// delegates hosting to an external asset host; this package keeps the service
// layer ignorant of where bytes actually land by hiding everything behind the
// ImageStore interface, with a local-disk implementation for self-contained
// deployments and tests.
package upload

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// ImageStore persists an uploaded image and returns the opaque URL stored on
// the recipe. Implementations must be safe for concurrent use.
type ImageStore interface {
	// Save writes the image bytes and returns the public URL to persist.
	// filename is the client-supplied name; only its extension is trusted.
	Save(filename string, r io.Reader) (string, error)
}

// allowedExtensions mirrors the formats the original deployment accepted.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// DiskStore is an ImageStore that writes files under Dir and serves them at
// BaseURL (e.g. "/uploads"). Stored names are xid-generated so concurrent
// uploads and repeated client filenames never collide.
type DiskStore struct {
	Dir     string
	BaseURL string
}

// NewDiskStore creates Dir if needed and returns a store serving at baseURL.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: creating image dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save implements ImageStore. It rejects extensions outside the allowed set
// so the store only ever serves image content types.
func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("upload: unsupported image format %q", ext)
	}

	name := xid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: creating image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("upload: writing image file: %w", err)
	}
	return path.Join(s.BaseURL, name), nil
}
