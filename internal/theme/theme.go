// Package theme models the active theme of a site. The site object owns
// its Theme exclusively; a fresh one is constructed per site and never
// shared between instances.
package theme

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"siteconf/internal/ports"
	"siteconf/internal/types"
)

// DefaultSlug is the fallback theme when a tenant has none configured or
// the lookup fails.
const DefaultSlug = "default"

type Theme struct {
	Slug string
	// TenantSlug is set in multi-tenant mode so the theme can qualify
	// per-tenant asset paths; empty in single-tenant mode.
	TenantSlug string
}

func (t *Theme) IsDefault() bool { return t.Slug == DefaultSlug }

// Resolve constructs the theme for a tenant from its stored theme slug.
// A failed or empty lookup falls back to the default theme rather than
// failing site construction; only tenant resolution is fatal there.
func Resolve(ctx context.Context, store ports.SettingsStore, tenant types.Tenant, multisite bool) *Theme {
	var slug string
	var err error
	if multisite {
		slug, err = store.GetTenant(ctx, tenant.ID, types.KeyTheme)
	} else {
		slug, err = store.GetGlobal(ctx, types.KeyTheme)
	}
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		log.WithError(err).WithField("tenant", tenant.ID).Warn("theme lookup failed, using default theme")
		slug = ""
	}
	if slug == "" {
		slug = DefaultSlug
	}
	t := &Theme{Slug: slug}
	if multisite {
		t.TenantSlug = tenant.Slug
	}
	return t
}
