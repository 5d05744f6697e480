package site

import (
	"context"

	log "github.com/sirupsen/logrus"

	"siteconf/internal/hooks"
	"siteconf/internal/pub"
	"siteconf/internal/theme"
	"siteconf/internal/types"
)

// Update writes a setting through the store and synchronously refreshes
// this instance's cache, so a subsequent Read returns the new value
// without a round trip. The value first runs through the hook pipeline,
// which may rewrite or veto it (types.ErrValueRejected); a vetoed write
// touches neither the store nor the cache. Store errors propagate to
// the caller unretried.
func (s *Site) Update(ctx context.Context, key, value string) error {
	tid := hooks.GlobalTenant
	if s.multisite {
		tid = s.id
	}

	if s.cfg.Hooks != nil {
		var err error
		value, err = s.cfg.Hooks.Apply(ctx, tid, key, value)
		if err != nil {
			return err
		}
	}

	var err error
	if s.multisite {
		err = s.cfg.Settings.SetTenant(ctx, s.id, key, value)
	} else {
		err = s.cfg.Settings.SetGlobal(ctx, key, value)
	}
	if err != nil {
		return err
	}

	s.refresh(key, value)
	s.publishChange(ctx, tid, key)
	return nil
}

// refresh replaces the cached value for key with what was written.
func (s *Site) refresh(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case types.KeyHomeURL:
		s.homeURL = value
	case types.KeySiteURL:
		s.siteURL = value
	case types.KeyName:
		s.name = value
	case types.KeyDescription:
		s.description = value
	case types.KeyAdminEmail:
		s.adminEmail = value
	case types.KeyCharset:
		s.charset = value
	case types.KeyLanguage:
		s.language = value
	case types.KeyPingbackURL:
		s.pingbackURL = value
	case types.KeyFeedRDF:
		s.feedRDF = value
	case types.KeyFeedRSS:
		s.feedRSS = value
	case types.KeyFeedRSS2:
		s.feedRSS2 = value
	case types.KeyFeedAtom:
		s.feedAtom = value
	case types.KeyTheme:
		t := &theme.Theme{Slug: value}
		if s.multisite {
			t.TenantSlug = s.tenant.Slug
		}
		if t.Slug == "" {
			t.Slug = theme.DefaultSlug
		}
		s.theme = t
	default:
		s.lazy[key] = types.Some(value)
	}
}

// publishChange emits the change event when a publisher is configured.
// The write already committed; a publish failure is logged, never
// surfaced.
func (s *Site) publishChange(ctx context.Context, tenantID int64, key string) {
	if s.cfg.Events == nil || s.cfg.EventsTopic == "" {
		return
	}
	payload, err := pub.ChangeEvent{TenantID: tenantID, Key: key}.Marshal()
	if err != nil {
		log.WithError(err).Error("failed to encode setting change event")
		return
	}
	if err := s.cfg.Events.PublishRaw(ctx, s.cfg.EventsTopic, payload); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to publish setting change event")
	}
}
