package site

import (
	"context"

	"siteconf/internal/tenantctx"
	"siteconf/internal/theme"
	"siteconf/internal/types"
)

func (s *SiteTestSuite) TestMultisiteConstruction() {
	ctx := context.Background()
	st, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)

	s.Equal(int64(5), st.ID())
	s.True(st.Multisite())
	s.Equal("Blog B", st.Name())
	s.Equal("the B side", st.Description())
	s.Equal("admin@b.example.com", st.AdminEmail())
	s.Equal("https://example.com", st.HomeURL())
	s.Equal("https://example.com/core", st.SiteURL())
	s.Equal("https://example.com/feed/atom", st.FeedAtomURL())
	s.Equal(types.DefaultCharset, st.Charset())
	s.Equal(types.DefaultLanguage, st.Language())
	s.Equal("twentyfive", st.Theme().Slug)
	s.Equal("blog-b", st.Theme().TenantSlug)
}

func (s *SiteTestSuite) TestConstructionBySlug() {
	st, err := New(context.Background(), s.multisiteConfig(), types.BySlug("blog-c"))
	s.NoError(err)
	s.Equal(int64(7), st.ID())
	s.Equal("Blog C", st.Name())
}

func (s *SiteTestSuite) TestConstructionAmbientDefaultsToDirectoryDefault() {
	// First tenant upserted became the directory default.
	st, err := New(context.Background(), s.multisiteConfig(), types.TenantRef{})
	s.NoError(err)
	s.Equal(int64(5), st.ID())
}

func (s *SiteTestSuite) TestConstructionAmbientFollowsContext() {
	ctx := tenantctx.With(context.Background(), 7)
	st, err := New(ctx, s.multisiteConfig(), types.TenantRef{})
	s.NoError(err)
	s.Equal(int64(7), st.ID())
}

func (s *SiteTestSuite) TestUnknownTenantFailsWithoutMutations() {
	counting := newCountingStore(s.store)
	cfg := s.multisiteConfig()
	cfg.Settings = counting

	_, err := New(context.Background(), cfg, types.BySlug("nope"))
	s.ErrorIs(err, types.ErrTenantNotFound)
	s.Empty(counting.gets)
}

func (s *SiteTestSuite) TestSingleTenantConstruction() {
	ctx := context.Background()
	s.NoError(s.store.SetGlobal(ctx, types.KeyName, "The Only Site"))
	s.NoError(s.store.SetGlobal(ctx, types.KeyAdminEmail, "root@example.com"))

	st, err := New(ctx, s.singleConfig(), types.TenantRef{})
	s.NoError(err)
	s.False(st.Multisite())
	s.Equal(int64(0), st.ID())
	s.Equal("The Only Site", st.Name())
	s.Equal("root@example.com", st.AdminEmail())
	s.Empty(st.Theme().TenantSlug)
}

func (s *SiteTestSuite) TestSingleTenantStoreFailureReturnsNoSite() {
	cfg := s.singleConfig()
	cfg.Settings = failingStore{SettingsStore: s.store, key: types.KeyName}

	st, err := New(context.Background(), cfg, types.TenantRef{})
	s.ErrorIs(err, types.ErrStoreAccess)
	s.Nil(st)
}

func (s *SiteTestSuite) TestThemeFallsBackToDefault() {
	// Tenant 7 has no theme configured.
	st, err := New(context.Background(), s.multisiteConfig(), types.ByID(7))
	s.NoError(err)
	s.Equal(theme.DefaultSlug, st.Theme().Slug)
	s.True(st.Theme().IsDefault())
}

func (s *SiteTestSuite) TestThemeNotSharedBetweenInstances() {
	ctx := context.Background()
	a, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)
	b, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)
	s.NotSame(a.Theme(), b.Theme())
}

func (s *SiteTestSuite) TestLinkReturnsHomeURLVerbatim() {
	st, err := New(context.Background(), s.multisiteConfig(), types.ByID(5))
	s.NoError(err)
	s.Equal("https://example.com", st.Link())
}

func (s *SiteTestSuite) TestLanguageAttributes() {
	st, err := New(context.Background(), s.multisiteConfig(), types.ByID(5))
	s.NoError(err)
	s.Equal(`lang="en-US" charset="UTF-8"`, st.LanguageAttributes())
}
