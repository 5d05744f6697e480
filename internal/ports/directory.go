package ports

import (
	"context"

	"siteconf/internal/types"
)

// TenantDirectory resolves and enumerates tenants.
// Implementations SHOULD be cheap to call repeatedly; callers MAY wrap
// them in an in-process TTL cache for hot-path slug resolution.
type TenantDirectory interface {
	// Resolve maps a TenantRef (id or slug) to the canonical tenant record.
	// MUST return types.ErrTenantNotFound if nothing matches. An ambient
	// (zero) ref resolves to the default tenant.
	Resolve(ctx context.Context, ref types.TenantRef) (types.Tenant, error)

	List(ctx context.Context) ([]types.Tenant, error)

	// Default returns the deployment's primary tenant.
	Default(ctx context.Context) (types.Tenant, error)

	Upsert(ctx context.Context, t types.Tenant) error

	Delete(ctx context.Context, id int64) error
}
