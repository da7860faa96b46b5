// Package contents keeps document bodies in the document_contents table.
package contents

import "context"

type Repository interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
