package enums

import (
	"fmt"
	"strings"
)

// StorageBackend selects where the durable client state lives.
type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendRedis  StorageBackend = "redis"
)

var validStorageBackends = []StorageBackend{
	StorageBackendSQLite,
	StorageBackendRedis,
}

// String implements fmt.Stringer.
func (s StorageBackend) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StorageBackend.
func (s StorageBackend) IsValid() bool {
	for _, candidate := range validStorageBackends {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStorageBackend converts raw input into a StorageBackend. Matching is
// case-insensitive so the same values config validation accepts parse here.
func ParseStorageBackend(value string) (StorageBackend, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStorageBackends {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage backend %q", value)
}
