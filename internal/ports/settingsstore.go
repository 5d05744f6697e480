package ports

import (
	"context"
)

// SettingsStore is the key/value settings backend, partitioned per tenant.
// Get methods MUST return types.ErrNotFound when the key has no entry;
// callers treat that as "confirmed absent", not as a failure.
// Implementations MUST NOT cache: read-memoization is the site object's
// job and double caching would break its read-your-writes guarantee.
type SettingsStore interface {
	// GetGlobal returns the value of an unpartitioned setting.
	GetGlobal(ctx context.Context, key string) (string, error)

	SetGlobal(ctx context.Context, key, value string) error

	// GetTenant returns the value of a setting in the given tenant's partition.
	GetTenant(ctx context.Context, tenantID int64, key string) (string, error)

	SetTenant(ctx context.Context, tenantID int64, key, value string) error
}
