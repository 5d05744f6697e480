package site

import (
	"context"
	"strings"

	json "github.com/goccy/go-json"

	"siteconf/internal/hooks"
	"siteconf/internal/pub"
	"siteconf/internal/types"
)

func (s *SiteTestSuite) TestUpdateReadYourWrites() {
	ctx := context.Background()
	counting := newCountingStore(s.store)
	cfg := s.multisiteConfig()
	cfg.Settings = counting

	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)

	s.NoError(st.Update(ctx, "posts_per_page", "25"))

	before := counting.getsFor("posts_per_page")
	v, err := st.Read(ctx, "posts_per_page")
	s.NoError(err)
	s.Equal(types.Some("25"), v)
	s.Equal(before, counting.getsFor("posts_per_page"))

	// The write went through to the store too.
	raw, err := s.store.GetTenant(ctx, 5, "posts_per_page")
	s.NoError(err)
	s.Equal("25", raw)
}

func (s *SiteTestSuite) TestUpdateRefreshesEagerField() {
	ctx := context.Background()
	st, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)

	s.NoError(st.Update(ctx, types.KeyName, "Blog B, renamed"))
	s.Equal("Blog B, renamed", st.Name())

	v, err := st.Read(ctx, types.KeyName)
	s.NoError(err)
	s.Equal("Blog B, renamed", v.Val)
}

func (s *SiteTestSuite) TestUpdateRunsTransformHooks() {
	ctx := context.Background()
	reg := hooks.NewRegistry()
	reg.Register(5, types.KeyDescription, func(ctx context.Context, tenantID int64, key, value string) (string, error) {
		return strings.TrimSpace(value), nil
	})

	cfg := s.multisiteConfig()
	cfg.Hooks = reg
	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)

	s.NoError(st.Update(ctx, types.KeyDescription, "  tidy  "))
	s.Equal("tidy", st.Description())

	raw, err := s.store.GetTenant(ctx, 5, types.KeyDescription)
	s.NoError(err)
	s.Equal("tidy", raw)
}

func (s *SiteTestSuite) TestVetoedUpdateTouchesNothing() {
	ctx := context.Background()
	reg := hooks.NewRegistry()
	reg.Register(5, types.KeyAdminEmail, func(ctx context.Context, tenantID int64, key, value string) (string, error) {
		return "", types.Err(types.ErrValueRejected, nil, "no plus addressing")
	})

	cfg := s.multisiteConfig()
	cfg.Hooks = reg
	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)

	err = st.Update(ctx, types.KeyAdminEmail, "admin+spam@b.example.com")
	s.ErrorIs(err, types.ErrValueRejected)

	s.Equal("admin@b.example.com", st.AdminEmail())
	raw, err := s.store.GetTenant(ctx, 5, types.KeyAdminEmail)
	s.NoError(err)
	s.Equal("admin@b.example.com", raw)
}

func (s *SiteTestSuite) TestStoreWriteErrorPropagates() {
	ctx := context.Background()
	st, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)
	st.cfg.Settings = rejectingStore{s.store}

	err = st.Update(ctx, "posts_per_page", "25")
	s.ErrorIs(err, types.ErrStoreAccess)

	// Cache untouched on a failed write.
	v, readErr := st.Read(ctx, "posts_per_page")
	s.NoError(readErr)
	s.False(v.Present)
}

func (s *SiteTestSuite) TestUpdatePublishesChangeEvent() {
	ctx := context.Background()
	rec := &recordingPublisher{}
	cfg := s.multisiteConfig()
	cfg.Events = rec
	cfg.EventsTopic = "arn:aws:sns:us-east-1:000000000000:siteconf-changes"

	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)
	s.NoError(st.Update(ctx, "posts_per_page", "25"))

	s.Len(rec.payloads, 1)
	s.Equal(cfg.EventsTopic, rec.arns[0])
	var ev pub.ChangeEvent
	s.NoError(json.Unmarshal(rec.payloads[0], &ev))
	s.Equal(pub.ChangeEvent{TenantID: 5, Key: "posts_per_page"}, ev)
}

func (s *SiteTestSuite) TestPublishFailureDoesNotFailUpdate() {
	ctx := context.Background()
	cfg := s.multisiteConfig()
	cfg.Events = &recordingPublisher{broken: true}
	cfg.EventsTopic = "arn:aws:sns:us-east-1:000000000000:siteconf-changes"

	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)
	s.NoError(st.Update(ctx, "posts_per_page", "25"))

	v, err := st.Read(ctx, "posts_per_page")
	s.NoError(err)
	s.Equal("25", v.Val)
}
