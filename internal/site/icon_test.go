package site

import (
	"context"

	"siteconf/internal/types"
)

func (s *SiteTestSuite) TestIconAbsentIsNotAnError() {
	st, err := New(context.Background(), s.multisiteConfig(), types.ByID(5))
	s.NoError(err)

	icon, err := st.Icon(context.Background())
	s.NoError(err)
	s.Nil(icon)
}

func (s *SiteTestSuite) TestIconZeroMeansUnset() {
	ctx := context.Background()
	s.NoError(s.store.SetTenant(ctx, 5, types.KeySiteIcon, "0"))

	st, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)

	icon, err := st.Icon(ctx)
	s.NoError(err)
	s.Nil(icon)
}

func (s *SiteTestSuite) TestIconBuildsHandleFromAttachmentID() {
	ctx := context.Background()
	s.NoError(s.store.SetTenant(ctx, 5, types.KeySiteIcon, "42"))
	// The attachment URL lives in the tenant partition; the resolver
	// must find it through the scoped ambient switch.
	s.NoError(s.store.SetTenant(ctx, 5, "attachment_42_url", "https://b.example.com/icon.png"))

	st, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)

	icon, err := st.Icon(ctx)
	s.NoError(err)
	s.NotNil(icon)
	s.Equal(int64(42), icon.AttachmentID)
	s.Equal("https://b.example.com/icon.png", icon.URL)
}

func (s *SiteTestSuite) TestIconSingleTenantReadsGlobal() {
	ctx := context.Background()
	s.NoError(s.store.SetGlobal(ctx, types.KeySiteIcon, "9"))
	s.NoError(s.store.SetGlobal(ctx, "attachment_9_url", "https://example.com/icon.png"))

	st, err := New(ctx, s.singleConfig(), types.TenantRef{})
	s.NoError(err)

	icon, err := st.Icon(ctx)
	s.NoError(err)
	s.NotNil(icon)
	s.Equal(int64(9), icon.AttachmentID)
	s.Equal("https://example.com/icon.png", icon.URL)
}
