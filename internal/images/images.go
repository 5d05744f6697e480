// Package images builds image handles from stored attachment ids.
package images

import (
	"context"
	"errors"
	"fmt"

	"siteconf/internal/ports"
	"siteconf/internal/tenantctx"
	"siteconf/internal/types"
)

type Image struct {
	AttachmentID int64
	URL          string
}

// FromAttachment constructs a handle for an attachment id. The URL
// lookup is ambient: it targets whatever tenant the context carries and
// falls back to the unpartitioned space otherwise. Callers switching
// tenants must therefore run this under tenantctx.RunAs. A missing URL
// is fine; the handle still identifies the attachment.
func FromAttachment(ctx context.Context, store ports.SettingsStore, id int64) (*Image, error) {
	key := fmt.Sprintf("attachment_%d_url", id)

	var url string
	var err error
	if tenant, ok := tenantctx.Ambient(ctx); ok {
		url, err = store.GetTenant(ctx, tenant, key)
	} else {
		url, err = store.GetGlobal(ctx, key)
	}
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	return &Image{AttachmentID: id, URL: url}, nil
}
