package site

import (
	"context"
	"strconv"

	"siteconf/internal/images"
	"siteconf/internal/lang"
	"siteconf/internal/tenantctx"
	"siteconf/internal/theme"
	"siteconf/internal/types"
)

// ID is the canonical tenant id; 0 in single-tenant mode.
func (s *Site) ID() int64 { return s.id }

func (s *Site) Multisite() bool { return s.multisite }

// Tenant is the resolved tenant record; zero in single-tenant mode.
func (s *Site) Tenant() types.Tenant { return s.tenant }

func (s *Site) Name() string        { s.mu.RLock(); defer s.mu.RUnlock(); return s.name }
func (s *Site) Description() string { s.mu.RLock(); defer s.mu.RUnlock(); return s.description }
func (s *Site) AdminEmail() string  { s.mu.RLock(); defer s.mu.RUnlock(); return s.adminEmail }
func (s *Site) HomeURL() string     { s.mu.RLock(); defer s.mu.RUnlock(); return s.homeURL }
func (s *Site) SiteURL() string     { s.mu.RLock(); defer s.mu.RUnlock(); return s.siteURL }
func (s *Site) Charset() string     { s.mu.RLock(); defer s.mu.RUnlock(); return s.charset }
func (s *Site) Language() string    { s.mu.RLock(); defer s.mu.RUnlock(); return s.language }
func (s *Site) PingbackURL() string { s.mu.RLock(); defer s.mu.RUnlock(); return s.pingbackURL }
func (s *Site) FeedRDFURL() string  { s.mu.RLock(); defer s.mu.RUnlock(); return s.feedRDF }
func (s *Site) FeedRSSURL() string  { s.mu.RLock(); defer s.mu.RUnlock(); return s.feedRSS }
func (s *Site) FeedRSS2URL() string { s.mu.RLock(); defer s.mu.RUnlock(); return s.feedRSS2 }
func (s *Site) FeedAtomURL() string { s.mu.RLock(); defer s.mu.RUnlock(); return s.feedAtom }

func (s *Site) Theme() *theme.Theme { s.mu.RLock(); defer s.mu.RUnlock(); return s.theme }

// Link is the stored home URL, verbatim.
func (s *Site) Link() string { return s.HomeURL() }

// LanguageAttributes formats this site's locale as markup attributes.
func (s *Site) LanguageAttributes() string {
	return lang.Attributes(s.Language(), s.Charset())
}

// Icon returns the site icon handle. A missing or unset icon yields
// (nil, nil), not an error. The lookup runs under the scoped tenant
// switch because the image constructor performs ambient lookups of its
// own.
func (s *Site) Icon(ctx context.Context) (*images.Image, error) {
	if !s.multisite {
		return s.icon(ctx)
	}
	var img *images.Image
	err := tenantctx.RunAs(ctx, s.id, func(ctx context.Context) error {
		var err error
		img, err = s.icon(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Site) icon(ctx context.Context) (*images.Image, error) {
	v, err := s.Read(ctx, types.KeySiteIcon)
	if err != nil {
		return nil, err
	}
	if !v.Present || v.Val == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v.Val, 10, 64)
	if err != nil || id == 0 {
		return nil, nil
	}
	return images.FromAttachment(ctx, s.cfg.Settings, id)
}
