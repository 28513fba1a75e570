package openapi

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Document wraps the raw OpenAPI payload. Keeping kin-openapi types out of
// the public surface keeps callers decoupled from the parser library.
type Document struct {
	raw []byte
}

// FromBytes wraps an in-memory document payload.
func FromBytes(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{raw: clone}, nil
}

// MustFromBytes panics if the document cannot be created. Useful for tests.
func MustFromBytes(raw []byte) Document {
	doc, err := FromBytes(raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// LoadFile reads a document from disk.
func LoadFile(path string) (Document, error) {
	if path == "" {
		return Document{}, errors.New("openapi: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return FromBytes(data)
}

// LoadFS reads a document from an fs.FS entry.
func LoadFS(fsys fs.FS, path string) (Document, error) {
	if fsys == nil {
		return Document{}, errors.New("openapi: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return FromBytes(data)
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}
