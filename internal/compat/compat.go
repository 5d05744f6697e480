// Package compat keeps the blog-era accessor names alive for callers
// that have not migrated yet. Every alias delegates to the current API
// and logs a deprecation warning once per name.
package compat

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"siteconf/internal/site"
	"siteconf/internal/types"
)

var warned sync.Map

func deprecated(old, current string) {
	if _, loaded := warned.LoadOrStore(old, struct{}{}); !loaded {
		log.WithField("replacement", current).Warnf("%s is deprecated", old)
	}
}

// legacyKeys maps blog-era setting names onto current ones.
var legacyKeys = map[string]string{
	"blogname":        types.KeyName,
	"blogdescription": types.KeyDescription,
	"blog_charset":    types.KeyCharset,
	"home":            types.KeyHomeURL,
	"siteurl":         types.KeySiteURL,
	"rdf_url":         types.KeyFeedRDF,
	"rss_url":         types.KeyFeedRSS,
	"rss2_url":        types.KeyFeedRSS2,
	"atom_url":        types.KeyFeedAtom,
	"stylesheet":      types.KeyTheme,
}

// BlogID is the old name for Site.ID.
func BlogID(s *site.Site) int64 {
	deprecated("compat.BlogID", "Site.ID")
	return s.ID()
}

// GetBlogInfo reads a setting under its blog-era name.
func GetBlogInfo(ctx context.Context, s *site.Site, name string) (types.Value, error) {
	deprecated("compat.GetBlogInfo", "Site.Read")
	if current, ok := legacyKeys[name]; ok {
		name = current
	}
	return s.Read(ctx, name)
}

// UpdateBlogOption writes a setting under its blog-era name.
func UpdateBlogOption(ctx context.Context, s *site.Site, name, value string) error {
	deprecated("compat.UpdateBlogOption", "Site.Update")
	if current, ok := legacyKeys[name]; ok {
		name = current
	}
	return s.Update(ctx, name, value)
}

// GetBlogLink is the old name for Site.Link.
func GetBlogLink(s *site.Site) string {
	deprecated("compat.GetBlogLink", "Site.Link")
	return s.Link()
}
