package storage

import "context"

// Durable keys owned by designated writers. Read-modify-write sequences go
// through the in-memory containers, never back through the store.
const (
	KeyCart       = "cart"
	KeyToken      = "token"
	KeyUser       = "user"
	KeyUserType   = "user_type"
	KeyCheckoutID = "checkout_id"

	// KeyTabPrefix namespaces the last-selected UI tab per surface.
	KeyTabPrefix = "tab:"
)

// Store is the durable client-side key-value contract. It stands in for the
// browser's persistent storage: process-local, single-writer per key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
