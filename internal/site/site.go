// Package site resolves a tenant's configuration bundle from the
// settings store and serves it from a per-instance cache.
//
// Reads are memoized for the lifetime of a Site: a value changed in the
// store out-of-band after the first read is not observed by this
// instance. The contract is read-your-writes within one instance, not
// cross-instance freshness.
package site

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"siteconf/internal/hooks"
	"siteconf/internal/ports"
	"siteconf/internal/tenantctx"
	"siteconf/internal/theme"
	"siteconf/internal/types"
)

// Config wires a Site to its collaborators. Settings is required;
// Tenants is required in multi-tenant mode. Hooks and Events are
// optional.
type Config struct {
	Settings ports.SettingsStore
	Tenants  ports.TenantDirectory
	Hooks    *hooks.Registry
	Events   ports.Publisher
	// EventsTopic is the SNS topic ARN change events go to. Empty
	// disables publishing even when Events is set.
	EventsTopic string
	Multisite   bool
}

type Site struct {
	cfg Config

	id        int64
	multisite bool
	tenant    types.Tenant

	mu          sync.RWMutex
	adminEmail  string
	name        string
	description string
	homeURL     string
	siteURL     string
	charset     string
	language    string
	pingbackURL string
	feedRDF     string
	feedRSS     string
	feedRSS2    string
	feedAtom    string
	theme       *theme.Theme
	lazy        map[string]types.Value
}

// New constructs the configuration object for one tenant.
//
// In multi-tenant mode ref selects the tenant (id, slug, or ambient
// when zero); an unresolvable ref fails with types.ErrTenantNotFound
// before any store access. Population of tenant fields uses
// tenant-parameterized store calls, but it still runs under the scoped
// ambient switch so nested lookups triggered from here target the right
// tenant. In single-tenant mode the directory is never consulted and id
// stays 0.
func New(ctx context.Context, cfg Config, ref types.TenantRef) (*Site, error) {
	if cfg.Settings == nil {
		return nil, fmt.Errorf("site: settings store is required")
	}
	s := &Site{cfg: cfg, lazy: make(map[string]types.Value)}

	if !cfg.Multisite {
		if err := s.populateCommon(ctx); err != nil {
			return nil, err
		}
		if err := s.populateSingleTenant(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	if cfg.Tenants == nil {
		return nil, fmt.Errorf("site: tenant directory is required in multi-tenant mode")
	}
	if ref.IsAmbient() {
		if id, ok := tenantctx.Ambient(ctx); ok {
			ref = types.ByID(id)
		}
	}
	t, err := cfg.Tenants.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.id = t.ID
	s.tenant = t
	s.multisite = true

	err = tenantctx.RunAs(ctx, t.ID, func(ctx context.Context) error {
		if err := s.populateCommon(ctx); err != nil {
			return err
		}
		return s.populateTenant(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// populateCommon reads the fields that are identical regardless of
// tenant partitioning. One store call per field; the fields are
// independent so order does not matter.
func (s *Site) populateCommon(ctx context.Context) error {
	reads := []struct {
		key string
		def string
		dst *string
	}{
		{types.KeyHomeURL, "", &s.homeURL},
		{types.KeySiteURL, "", &s.siteURL},
		{types.KeyFeedRDF, "", &s.feedRDF},
		{types.KeyFeedRSS, "", &s.feedRSS},
		{types.KeyFeedRSS2, "", &s.feedRSS2},
		{types.KeyFeedAtom, "", &s.feedAtom},
		{types.KeyPingbackURL, "", &s.pingbackURL},
		{types.KeyCharset, types.DefaultCharset, &s.charset},
		{types.KeyLanguage, types.DefaultLanguage, &s.language},
	}
	for _, r := range reads {
		v, err := s.cfg.Settings.GetGlobal(ctx, r.key)
		if err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				return err
			}
			v = r.def
		}
		*r.dst = v
	}
	return nil
}

// populateTenant reads the tenant-partitioned fields with parameterized
// calls so their correctness does not depend on ambient nesting depth.
func (s *Site) populateTenant(ctx context.Context, t types.Tenant) error {
	reads := []struct {
		key string
		dst *string
	}{
		{types.KeyName, &s.name},
		{types.KeyDescription, &s.description},
		{types.KeyAdminEmail, &s.adminEmail},
	}
	for _, r := range reads {
		v, err := s.cfg.Settings.GetTenant(ctx, t.ID, r.key)
		if err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				return err
			}
			v = ""
		}
		*r.dst = v
	}
	s.theme = theme.Resolve(ctx, s.cfg.Settings, t, true)
	return nil
}

func (s *Site) populateSingleTenant(ctx context.Context) error {
	reads := []struct {
		key string
		dst *string
	}{
		{types.KeyName, &s.name},
		{types.KeyDescription, &s.description},
		{types.KeyAdminEmail, &s.adminEmail},
	}
	for _, r := range reads {
		v, err := s.cfg.Settings.GetGlobal(ctx, r.key)
		if err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				return err
			}
			v = ""
		}
		*r.dst = v
	}
	s.theme = theme.Resolve(ctx, s.cfg.Settings, types.Tenant{}, false)
	return nil
}
