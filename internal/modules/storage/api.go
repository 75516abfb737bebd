package storage

import (
	"context"
	"fmt"
	"io"
)

// Archiver keeps a copy of a fetched image in object storage.
type Archiver interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
}

type ObjectKey struct {
	Device    string
	Date      string // YYYY-MM-DD
	Extension string
}

func (k ObjectKey) Key() string {
	ext := k.Extension
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("weather/%s/%s.%s", k.Device, k.Date, ext)
}
