// Package blobstore keeps document contents either in the database or in an
// S3-compatible bucket.
package blobstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is keyed binary storage. Get of an unknown key returns
// common.ErrorNotFound; Delete of an unknown key succeeds.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh key of the form documents/YYYY/M/D/<uuid>.
func NewKey(now time.Time) string {
	return fmt.Sprintf("documents/%d/%d/%d/%s", now.Year(), now.Month(), now.Day(), uuid.NewString())
}
