package site

import (
	"context"
	"sync"

	"siteconf/internal/tenantctx"
	"siteconf/internal/types"
)

// The ambient tenant observed after a construction must equal the one
// observed before it, on success and failure paths alike.
func (s *SiteTestSuite) TestConstructionPreservesAmbientTenant() {
	ctx := tenantctx.With(context.Background(), 7)

	_, err := New(ctx, s.multisiteConfig(), types.ByID(5))
	s.NoError(err)
	id, ok := tenantctx.Ambient(ctx)
	s.True(ok)
	s.Equal(int64(7), id)

	_, err = New(ctx, s.multisiteConfig(), types.ByID(999))
	s.ErrorIs(err, types.ErrTenantNotFound)
	id, ok = tenantctx.Ambient(ctx)
	s.True(ok)
	s.Equal(int64(7), id)
}

// Interleaved constructions for two tenants must never cross-contaminate.
func (s *SiteTestSuite) TestConcurrentConstructionsDoNotCrossContaminate() {
	ctx := context.Background()
	cfg := s.multisiteConfig()

	const rounds = 50
	var wg sync.WaitGroup
	errs := make(chan error, rounds*2)

	construct := func(id int64, wantName, wantEmail string) {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			st, err := New(ctx, cfg, types.ByID(id))
			if err != nil {
				errs <- err
				return
			}
			if st.ID() != id || st.Name() != wantName || st.AdminEmail() != wantEmail {
				errs <- types.Err(types.ErrStoreAccess, nil,
					"tenant %d got id=%d name=%q email=%q", id, st.ID(), st.Name(), st.AdminEmail())
				return
			}
		}
	}

	wg.Add(2)
	go construct(5, "Blog B", "admin@b.example.com")
	go construct(7, "Blog C", "admin@c.example.com")
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
}

func (s *SiteTestSuite) TestConcurrentLazyReadsSingleStoreHit() {
	ctx := context.Background()
	s.NoError(s.store.SetTenant(ctx, 5, "posts_per_page", "10"))

	counting := newCountingStore(s.store)
	cfg := s.multisiteConfig()
	cfg.Settings = counting

	st, err := New(ctx, cfg, types.ByID(5))
	s.NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := st.Read(ctx, "posts_per_page")
			s.NoError(err)
			s.Equal("10", v.Val)
		}()
	}
	wg.Wait()
	s.Equal(1, counting.getsFor("posts_per_page"))
}
