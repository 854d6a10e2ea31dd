package trace

import "context"

type ctxKey struct{}

// binding is what a context carries for tracing: where events go and which
// span new spans nest under.
type binding struct {
	tracer Tracer
	parent uint64
}

func lookup(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(ctxKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// WithTracer attaches t to ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, binding{tracer: t})
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return lookup(ctx).tracer
}

// ParentID is the span that spans started under ctx nest in, 0 at the top.
func ParentID(ctx context.Context) uint64 {
	return lookup(ctx).parent
}

// WithParent returns a context whose spans nest under the span id.
func WithParent(ctx context.Context, id uint64) context.Context {
	b := lookup(ctx)
	b.parent = id
	return context.WithValue(ctx, ctxKey{}, b)
}

// Start begins a span under the tracer and parent carried by ctx. The
// returned context nests further spans inside it.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	b := lookup(ctx)
	span := Begin(b.tracer, scope, name, b.parent)
	if span.ID() == 0 {
		return span, ctx
	}
	return span, WithParent(ctx, span.ID())
}
