// Package storage holds the media storage provider. Uploaded files are
// delegated to S3-compatible object storage; this service only keeps the
// resulting URL and key.
package storage

import (
	"context"
	"io"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

type Provider interface {
	// Put stores the content under a generated key within folder and
	// returns the durable reference.
	Put(ctx context.Context, folder, ext, contentType string, content io.ReadSeeker) (domain.MediaRef, error)
	// Delete removes a previously stored object by its public id. Missing
	// objects are not an error.
	Delete(ctx context.Context, publicID string) error
}
