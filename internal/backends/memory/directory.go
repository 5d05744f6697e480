package memory

import (
	"context"
	"sort"
	"sync"

	"siteconf/internal/types"
)

type Directory struct {
	mu        sync.RWMutex
	byID      map[int64]types.Tenant
	bySlug    map[string]int64
	defaultID int64
}

func NewDirectory() *Directory {
	return &Directory{
		byID:   make(map[int64]types.Tenant),
		bySlug: make(map[string]int64),
	}
}

func (d *Directory) Resolve(ctx context.Context, ref types.TenantRef) (types.Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id := ref.ID
	if id == 0 {
		if ref.Slug == "" {
			id = d.defaultID
		} else {
			id = d.bySlug[ref.Slug]
		}
	}
	t, ok := d.byID[id]
	if !ok {
		return types.Tenant{}, types.Err(types.ErrTenantNotFound, nil, "tenant %s", ref)
	}
	return t, nil
}

func (d *Directory) List(ctx context.Context) ([]types.Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]types.Tenant, 0, len(d.byID))
	for _, t := range d.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Directory) Default(ctx context.Context) (types.Tenant, error) {
	return d.Resolve(ctx, types.TenantRef{})
}

// SetDefault marks the deployment's primary tenant.
func (d *Directory) SetDefault(id int64) {
	d.mu.Lock()
	d.defaultID = id
	d.mu.Unlock()
}

func (d *Directory) Upsert(ctx context.Context, t types.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.byID[t.ID]; ok && old.Slug != t.Slug {
		delete(d.bySlug, old.Slug)
	}
	d.byID[t.ID] = t
	d.bySlug[t.Slug] = t.ID
	if d.defaultID == 0 {
		d.defaultID = t.ID
	}
	return nil
}

func (d *Directory) Delete(ctx context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.byID[id]; ok {
		delete(d.bySlug, t.Slug)
		delete(d.byID, id)
	}
	return nil
}
