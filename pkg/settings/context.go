package settings

import "context"

// runKey is an unexported struct type so no other package can collide with
// the value stored here.
type runKey struct{}

// IntoContext attaches the resolved run parameters for a pick session.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the run parameters stored by IntoContext, if any.
func FromContext(ctx context.Context) (*Run, bool) {
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok
}
