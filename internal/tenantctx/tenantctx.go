// Package tenantctx carries the ambient tenant through context.Context.
//
// The ambient tenant is the tenant implicitly targeted by any
// unparameterized settings lookup. It is task-local by construction:
// With derives a child context and the previous value is restored the
// moment the derived context goes out of scope, so an unmatched
// push/pop cannot exist and concurrent callers never observe each
// other's switches.
package tenantctx

import "context"

type ctxKey struct{}

// With returns a context whose ambient tenant is id.
func With(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Ambient returns the ambient tenant id, if one is set.
func Ambient(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}

// RunAs executes fn with the ambient tenant set to id. The caller's
// ambient tenant is untouched on every exit path, including errors,
// because the switch only exists in the derived context handed to fn.
func RunAs(ctx context.Context, id int64, fn func(ctx context.Context) error) error {
	return fn(With(ctx, id))
}
