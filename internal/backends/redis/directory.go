package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"siteconf/internal/types"
)

const (
	tenantRecordPrefix   = "_siteconf_tenant_"
	tenantRecordTemplate = tenantRecordPrefix + "%d"
	slugIndexTemplate    = "_siteconf_slug_%s"
	defaultTenantKey     = "_siteconf_default"
)

// Directory stores tenant records as JSON blobs with a slug index kept
// alongside. Records and index are written independently; Upsert keeps
// them consistent.
type Directory struct {
	cli *redis.Client
}

func NewDirectory(cli *redis.Client) *Directory {
	return &Directory{cli: cli}
}

func (d *Directory) Resolve(ctx context.Context, ref types.TenantRef) (types.Tenant, error) {
	id := ref.ID
	if id == 0 && ref.Slug != "" {
		out := d.cli.Get(ctx, fmt.Sprintf(slugIndexTemplate, ref.Slug))
		if out.Err() != nil {
			if errors.Is(out.Err(), redis.Nil) {
				return types.Tenant{}, types.Err(types.ErrTenantNotFound, nil, "tenant %s", ref)
			}
			return types.Tenant{}, types.Err(types.ErrStoreAccess, out.Err(), "resolve slug %q", ref.Slug)
		}
		var err error
		id, err = strconv.ParseInt(out.Val(), 10, 64)
		if err != nil {
			return types.Tenant{}, types.Err(types.ErrStoreAccess, err, "corrupt slug index %q", ref.Slug)
		}
	}
	if id == 0 {
		out := d.cli.Get(ctx, defaultTenantKey)
		if out.Err() != nil {
			if errors.Is(out.Err(), redis.Nil) {
				return types.Tenant{}, types.Err(types.ErrTenantNotFound, nil, "no default tenant")
			}
			return types.Tenant{}, types.Err(types.ErrStoreAccess, out.Err(), "resolve default tenant")
		}
		var err error
		id, err = strconv.ParseInt(out.Val(), 10, 64)
		if err != nil {
			return types.Tenant{}, types.Err(types.ErrStoreAccess, err, "corrupt default tenant key")
		}
	}
	return d.load(ctx, id, ref)
}

func (d *Directory) load(ctx context.Context, id int64, ref types.TenantRef) (types.Tenant, error) {
	out := d.cli.Get(ctx, fmt.Sprintf(tenantRecordTemplate, id))
	if out.Err() != nil {
		if errors.Is(out.Err(), redis.Nil) {
			return types.Tenant{}, types.Err(types.ErrTenantNotFound, nil, "tenant %s", ref)
		}
		return types.Tenant{}, types.Err(types.ErrStoreAccess, out.Err(), "load tenant %d", id)
	}
	var t types.Tenant
	if err := json.Unmarshal([]byte(out.Val()), &t); err != nil {
		return types.Tenant{}, types.Err(types.ErrStoreAccess, err, "corrupt tenant record %d", id)
	}
	return t, nil
}

func (d *Directory) List(ctx context.Context) ([]types.Tenant, error) {
	out := d.cli.Keys(ctx, tenantRecordPrefix+"*")
	if out.Err() != nil {
		return nil, types.Err(types.ErrStoreAccess, out.Err(), "list tenants")
	}
	tenants := make([]types.Tenant, 0, len(out.Val()))
	for _, k := range out.Val() {
		get := d.cli.Get(ctx, k)
		if get.Err() != nil {
			return nil, types.Err(types.ErrStoreAccess, get.Err(), "load %q", k)
		}
		var t types.Tenant
		if err := json.Unmarshal([]byte(get.Val()), &t); err != nil {
			return nil, types.Err(types.ErrStoreAccess, err, "corrupt tenant record %q", k)
		}
		tenants = append(tenants, t)
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].ID < tenants[j].ID })
	return tenants, nil
}

func (d *Directory) Default(ctx context.Context) (types.Tenant, error) {
	return d.Resolve(ctx, types.TenantRef{})
}

func (d *Directory) Upsert(ctx context.Context, t types.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if out := d.cli.Set(ctx, fmt.Sprintf(tenantRecordTemplate, t.ID), string(raw), 0); out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "store tenant %d", t.ID)
	}
	if out := d.cli.Set(ctx, fmt.Sprintf(slugIndexTemplate, t.Slug), strconv.FormatInt(t.ID, 10), 0); out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "index slug %q", t.Slug)
	}
	// First tenant in becomes the default.
	d.cli.SetNX(ctx, defaultTenantKey, strconv.FormatInt(t.ID, 10), 0)
	return nil
}

func (d *Directory) Delete(ctx context.Context, id int64) error {
	t, err := d.load(ctx, id, types.ByID(id))
	if err != nil {
		if errors.Is(err, types.ErrTenantNotFound) {
			return nil
		}
		return err
	}
	if out := d.cli.Del(ctx, fmt.Sprintf(slugIndexTemplate, t.Slug)); out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "drop slug index %q", t.Slug)
	}
	out := d.cli.Del(ctx, fmt.Sprintf(tenantRecordTemplate, id))
	if out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "drop tenant %d", id)
	}
	return nil
}
