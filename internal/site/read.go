package site

import (
	"context"
	"errors"

	"siteconf/internal/types"
)

// Read resolves a setting by name. Eager fields and previously resolved
// lazy values are served from the instance cache without a store round
// trip; anything else hits the store once and is memoized, including a
// confirmed absence.
func (s *Site) Read(ctx context.Context, key string) (types.Value, error) {
	if v, ok := s.eager(key); ok {
		return v, nil
	}

	// The lock is held across the store call so the get for a key runs
	// at most once per instance even under concurrent first reads.
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.lazy[key]; ok {
		return v, nil
	}

	var raw string
	var err error
	if s.multisite {
		raw, err = s.cfg.Settings.GetTenant(ctx, s.id, key)
	} else {
		raw, err = s.cfg.Settings.GetGlobal(ctx, key)
	}
	v := types.Some(raw)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			return types.None, err
		}
		v = types.None
	}
	s.lazy[key] = v
	return v, nil
}

// eager serves the fields populated at construction.
func (s *Site) eager(key string) (types.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch key {
	case types.KeyHomeURL:
		return types.Some(s.homeURL), true
	case types.KeySiteURL:
		return types.Some(s.siteURL), true
	case types.KeyName:
		return types.Some(s.name), true
	case types.KeyDescription:
		return types.Some(s.description), true
	case types.KeyAdminEmail:
		return types.Some(s.adminEmail), true
	case types.KeyCharset:
		return types.Some(s.charset), true
	case types.KeyLanguage:
		return types.Some(s.language), true
	case types.KeyPingbackURL:
		return types.Some(s.pingbackURL), true
	case types.KeyFeedRDF:
		return types.Some(s.feedRDF), true
	case types.KeyFeedRSS:
		return types.Some(s.feedRSS), true
	case types.KeyFeedRSS2:
		return types.Some(s.feedRSS2), true
	case types.KeyFeedAtom:
		return types.Some(s.feedAtom), true
	case types.KeyTheme:
		return types.Some(s.theme.Slug), true
	default:
		return types.None, false
	}
}
