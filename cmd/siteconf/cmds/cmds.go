// Package cmds holds the CLI operations so tests can drive them
// directly against a store.
package cmds

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"siteconf/internal/ports"
	"siteconf/internal/site"
	"siteconf/internal/types"
)

// Seed is the YAML shape consumed by the seed command: tenant records,
// unpartitioned settings, and per-tenant settings keyed by slug.
type Seed struct {
	Tenants []types.Tenant               `yaml:"tenants"`
	Global  map[string]string            `yaml:"global"`
	Sites   map[string]map[string]string `yaml:"sites"`
}

// SeedFromFile loads a seed file into the directory and store.
func SeedFromFile(ctx context.Context, dir ports.TenantDirectory, store ports.SettingsStore, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return types.Err(types.ErrInvalidSeed, err, "%s", path)
	}

	bySlug := make(map[string]int64, len(seed.Tenants))
	for _, t := range seed.Tenants {
		if err := dir.Upsert(ctx, t); err != nil {
			return err
		}
		bySlug[t.Slug] = t.ID
	}
	for key, value := range seed.Global {
		if err := store.SetGlobal(ctx, key, value); err != nil {
			return err
		}
	}
	for slug, settings := range seed.Sites {
		id, ok := bySlug[slug]
		if !ok {
			t, err := dir.Resolve(ctx, types.BySlug(slug))
			if err != nil {
				return types.Err(types.ErrInvalidSeed, err, "sites entry %q has no tenant record", slug)
			}
			id = t.ID
		}
		for key, value := range settings {
			if err := store.SetTenant(ctx, id, key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Info renders the resolved configuration bundle for a tenant.
func Info(ctx context.Context, cfg site.Config, ref types.TenantRef) (string, error) {
	s, err := site.New(ctx, cfg, ref)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf(
		"id:          %d\nmultisite:   %v\nname:        %s\ndescription: %s\nadmin_email: %s\nhome_url:    %s\nsite_url:    %s\ntheme:       %s\nlanguage:    %s\ncharset:     %s\n",
		s.ID(), s.Multisite(), s.Name(), s.Description(), s.AdminEmail(),
		s.HomeURL(), s.SiteURL(), s.Theme().Slug, s.Language(), s.Charset(),
	)
	if icon, err := s.Icon(ctx); err == nil && icon != nil {
		out += fmt.Sprintf("icon:        #%d %s\n", icon.AttachmentID, icon.URL)
	}
	return out, nil
}
