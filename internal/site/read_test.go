package site

import (
	"context"

	"siteconf/internal/types"
)

func (s *SiteTestSuite) TestLazyReadIsMemoized() {
	ctx := context.Background()
	s.NoError(s.store.SetTenant(ctx, 5, "posts_per_page", "10"))

	counting := newCountingStore(s.store)
	cfg := s.multisiteConfig()
	cfg.Settings = counting

	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)

	v1, err := st.Read(ctx, "posts_per_page")
	s.NoError(err)
	s.Equal(types.Some("10"), v1)

	v2, err := st.Read(ctx, "posts_per_page")
	s.NoError(err)
	s.Equal(v1, v2)
	s.Equal(1, counting.getsFor("posts_per_page"))
}

func (s *SiteTestSuite) TestLazyReadCachesAbsence() {
	ctx := context.Background()
	counting := newCountingStore(s.store)
	cfg := s.multisiteConfig()
	cfg.Settings = counting

	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)

	v, err := st.Read(ctx, "no_such_setting")
	s.NoError(err)
	s.False(v.Present)

	_, err = st.Read(ctx, "no_such_setting")
	s.NoError(err)
	s.Equal(1, counting.getsFor("no_such_setting"))
}

func (s *SiteTestSuite) TestLazyReadDoesNotObserveOutOfBandWrites() {
	ctx := context.Background()
	s.NoError(s.store.SetTenant(ctx, 5, "timezone", "UTC"))

	st, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)

	v, err := st.Read(ctx, "timezone")
	s.NoError(err)
	s.Equal("UTC", v.Val)

	// Another writer changes the store directly; this instance keeps
	// its memoized view.
	s.NoError(s.store.SetTenant(ctx, 5, "timezone", "Europe/Riga"))
	v, err = st.Read(ctx, "timezone")
	s.NoError(err)
	s.Equal("UTC", v.Val)
}

func (s *SiteTestSuite) TestEagerFieldsServedWithoutStoreAccess() {
	ctx := context.Background()
	counting := newCountingStore(s.store)
	cfg := s.multisiteConfig()
	cfg.Settings = counting

	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)

	constructionGets := counting.getsFor(types.KeyName)
	v, err := st.Read(ctx, types.KeyName)
	s.NoError(err)
	s.Equal(types.Some("Blog B"), v)
	s.Equal(constructionGets, counting.getsFor(types.KeyName))
}

func (s *SiteTestSuite) TestLazyReadScopedToOwnTenant() {
	ctx := context.Background()
	s.NoError(s.store.SetTenant(ctx, 5, "accent", "blue"))
	s.NoError(s.store.SetTenant(ctx, 7, "accent", "red"))

	b, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)
	c, err := New(ctx, s.multisiteConfig(), types.ByID(7))
	s.NoError(err)

	vb, err := b.Read(ctx, "accent")
	s.NoError(err)
	vc, err := c.Read(ctx, "accent")
	s.NoError(err)
	s.Equal("blue", vb.Val)
	s.Equal("red", vc.Val)
}
