// Package imagecache is a content-addressed store for encoded spectrum
// images. Keys are derived from the image's source content, so writing the
// same spectrum twice is idempotent and concurrent re-runs are safe.
package imagecache

import (
	"encoding/binary"
	"encoding/hex"
	"image"
	"image/png"
	"os"
	"path/filepath"

	spooky "github.com/dgryski/go-spooky"
)

// Store persists PNG images under a directory, one file per content key.
type Store struct {
	Path string
}

// Open creates a store backed by the given directory, creating it if it
// does not already exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0777); err != nil {
		return nil, err
	}
	return &Store{Path: path}, nil
}

// Key returns the content hash for the given bytes.
func Key(content []byte) string {
	var h1, h2 uint64
	spooky.Hash128(content, &h1, &h2)
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], h1)
	binary.BigEndian.PutUint64(buf[8:], h2)
	return hex.EncodeToString(buf[:])
}

// FilePath returns the path the image for the given key is stored at.
func (s *Store) FilePath(key string) string {
	return filepath.Join(s.Path, key+".png")
}

// Exists reports whether an image for the given key has been written.
func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.FilePath(key))
	return err == nil
}

// Put PNG-encodes the image and writes it under the given key.
func (s *Store) Put(key string, img image.Image) error {
	f, err := os.Create(s.FilePath(key))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Get reads back the image stored for the given key.
func (s *Store) Get(key string) (image.Image, error) {
	f, err := os.Open(s.FilePath(key))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
