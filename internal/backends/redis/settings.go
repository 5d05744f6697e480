package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"siteconf/internal/codec"
	"siteconf/internal/types"
)

const (
	globalKeyTemplate = "_siteconf_opt_g_%s"
	tenantKeyTemplate = "_siteconf_opt_t%d_%s"
)

// SettingsStore keeps each setting in its own Redis string key so reads
// stay O(1) regardless of partition size.
type SettingsStore struct {
	cli *redis.Client
}

func NewSettingsStore(cli *redis.Client) *SettingsStore {
	return &SettingsStore{cli: cli}
}

func (s *SettingsStore) GetGlobal(ctx context.Context, key string) (string, error) {
	return s.get(ctx, globalKey(key))
}

func (s *SettingsStore) SetGlobal(ctx context.Context, key, value string) error {
	out := s.cli.Set(ctx, globalKey(key), codec.Encode(value), 0)
	if out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "set global %q", key)
	}
	return nil
}

func (s *SettingsStore) GetTenant(ctx context.Context, tenantID int64, key string) (string, error) {
	return s.get(ctx, tenantKey(tenantID, key))
}

func (s *SettingsStore) SetTenant(ctx context.Context, tenantID int64, key, value string) error {
	out := s.cli.Set(ctx, tenantKey(tenantID, key), codec.Encode(value), 0)
	if out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "set tenant %d %q", tenantID, key)
	}
	return nil
}

func (s *SettingsStore) get(ctx context.Context, redisKey string) (string, error) {
	out := s.cli.Get(ctx, redisKey)
	if out.Err() != nil {
		if errors.Is(out.Err(), redis.Nil) {
			return "", types.ErrNotFound
		}
		return "", types.Err(types.ErrStoreAccess, out.Err(), "get %q", redisKey)
	}
	return codec.Decode(out.Val())
}

func globalKey(key string) string { return fmt.Sprintf(globalKeyTemplate, key) }

func tenantKey(id int64, key string) string { return fmt.Sprintf(tenantKeyTemplate, id, key) }
