package backends

import (
	"context"
	"time"

	"siteconf/internal/cache"
	"siteconf/internal/ports"
	"siteconf/internal/types"
)

// resolveTTL bounds how stale a cached slug/id resolution may be.
// Tenant records change rarely; settings reads never go through here.
const resolveTTL = 60 * time.Second

// CachedDirectory wraps a TenantDirectory with a TTL cache on Resolve.
// Writes invalidate eagerly; other nodes converge within resolveTTL.
type CachedDirectory struct {
	inner ports.TenantDirectory
	byRef *cache.TTL[types.TenantRef, types.Tenant]
}

func NewCachedDirectory(inner ports.TenantDirectory) *CachedDirectory {
	return &CachedDirectory{
		inner: inner,
		byRef: cache.NewTTL[types.TenantRef, types.Tenant](),
	}
}

func (d *CachedDirectory) Resolve(ctx context.Context, ref types.TenantRef) (types.Tenant, error) {
	if t, ok := d.byRef.Get(ref); ok {
		return t, nil
	}
	t, err := d.inner.Resolve(ctx, ref)
	if err != nil {
		return types.Tenant{}, err
	}
	d.byRef.Set(ref, t, resolveTTL)
	return t, nil
}

func (d *CachedDirectory) List(ctx context.Context) ([]types.Tenant, error) {
	return d.inner.List(ctx)
}

func (d *CachedDirectory) Default(ctx context.Context) (types.Tenant, error) {
	return d.Resolve(ctx, types.TenantRef{})
}

func (d *CachedDirectory) Upsert(ctx context.Context, t types.Tenant) error {
	if err := d.inner.Upsert(ctx, t); err != nil {
		return err
	}
	d.byRef.Invalidate(types.ByID(t.ID))
	d.byRef.Invalidate(types.BySlug(t.Slug))
	d.byRef.Invalidate(types.TenantRef{})
	return nil
}

func (d *CachedDirectory) Delete(ctx context.Context, id int64) error {
	if t, err := d.inner.Resolve(ctx, types.ByID(id)); err == nil {
		d.byRef.Invalidate(types.BySlug(t.Slug))
	}
	if err := d.inner.Delete(ctx, id); err != nil {
		return err
	}
	d.byRef.Invalidate(types.ByID(id))
	d.byRef.Invalidate(types.TenantRef{})
	return nil
}
