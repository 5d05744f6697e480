// Package hooks is the write-guard pipeline for setting updates. Filters
// are keyed by (tenant, key) and run in registration order; each one may
// rewrite the value or veto the write entirely.
package hooks

import (
	"context"
	"fmt"
	"sync"
)

// GlobalTenant registers a filter for the unpartitioned settings space.
const GlobalTenant int64 = 0

// Func transforms a candidate value. Returning an error vetoes the
// write; wrap or return types.ErrValueRejected for a policy veto.
type Func func(ctx context.Context, tenantID int64, key, value string) (string, error)

type Registry struct {
	mu    sync.RWMutex
	funcs map[string][]Func
}

func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string][]Func)}
}

func slot(tenantID int64, key string) string {
	return fmt.Sprintf("%d/%s", tenantID, key)
}

// Register appends fn to the pipeline for (tenantID, key). Use
// GlobalTenant for filters on the unpartitioned space.
func (r *Registry) Register(tenantID int64, key string, fn Func) {
	r.mu.Lock()
	s := slot(tenantID, key)
	r.funcs[s] = append(r.funcs[s], fn)
	r.mu.Unlock()
}

// Apply runs the pipeline for (tenantID, key) over value. The first
// filter error stops the chain and is returned as-is.
func (r *Registry) Apply(ctx context.Context, tenantID int64, key, value string) (string, error) {
	r.mu.RLock()
	fns := r.funcs[slot(tenantID, key)]
	r.mu.RUnlock()
	for _, fn := range fns {
		out, err := fn(ctx, tenantID, key, value)
		if err != nil {
			return "", err
		}
		value = out
	}
	return value, nil
}
