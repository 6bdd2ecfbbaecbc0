package observability

import "context"

type contextKey struct{}

// WithObserver returns a copy of ctx carrying the given Observer. Core
// packages retrieve it with FromContext; passing a nil observer is allowed
// and equivalent to not attaching one.
func WithObserver(ctx context.Context, observer Observer) context.Context {
	return context.WithValue(ctx, contextKey{}, observer)
}

// FromContext returns the Observer attached to ctx, or a no-op observer when
// none is present. The result is never nil, so callers can log
// unconditionally.
func FromContext(ctx context.Context) Observer {
	if observer, ok := ctx.Value(contextKey{}).(Observer); ok && observer != nil {
		return observer
	}
	return nopObserver{}
}

// nopObserver discards every event.
type nopObserver struct{}

func (nopObserver) Debug(context.Context, string, ...Attribute) {}
func (nopObserver) Info(context.Context, string, ...Attribute)  {}
func (nopObserver) Warn(context.Context, string, ...Attribute)  {}
func (nopObserver) Error(context.Context, string, ...Attribute) {}
