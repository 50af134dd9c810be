// Package object stores retained uploads on the local filesystem or S3.
package object

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"career-backend/internal/shared/util"
)

// Store saves and reads binary objects by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Provider() string
}

// NewKey builds a unique key under the owner's hashed namespace.
func NewKey(owner, fileName string) (string, error) {
	name, err := util.CleanFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("object key: %w", err)
	}
	return path.Join(util.OwnerDir(owner), uuid.NewString()+"_"+name), nil
}

// ExtractedKey is the key of the text copy stored next to key.
func ExtractedKey(key string) string {
	return key + ".extracted.txt"
}
