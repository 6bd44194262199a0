package tempres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// ErrInterrupted is the context cause set when a trapped signal arrives
// during a scoped acquisition.
var ErrInterrupted = errors.New("interrupted by signal")

// With acquires a resource, runs body with it and releases it on every exit
// path. The result or error of body is returned after cleanup. A panic in
// body is re-raised after the resource has been released.
func With[T any](ctx context.Context, g *Guard, req Request, body func(context.Context, *Resource) (T, error)) (T, error) {
	ctx, stop := g.trap(ctx)
	defer stop()

	res, err := g.Acquire(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	defer g.Release(res)

	return body(ctx, res)
}

// Do is With for bodies without a result.
func Do(ctx context.Context, g *Guard, req Request, body func(context.Context, *Resource) error) error {
	_, err := With(ctx, g, req, func(ctx context.Context, res *Resource) (struct{}, error) {
		return struct{}{}, body(ctx, res)
	})
	return err
}

// WithGroup runs body with a fresh Group and releases every resource the
// body acquired through it, most recent first.
func WithGroup(ctx context.Context, g *Guard, owner string, body func(context.Context, *Group) error) error {
	ctx, stop := g.trap(ctx)
	defer stop()

	grp := g.NewGroup(owner)
	defer grp.Release()

	return body(ctx, grp)
}

// trap derives a context that is cancelled with ErrInterrupted when one of
// the guard's signals arrives. The returned stop func restores default
// signal handling.
func (g *Guard) trap(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	if len(g.signals) == 0 {
		return ctx, func() { cancel(nil) }
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, g.signals...)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			g.log.Warningf("Received %s, releasing temporary resources", sig)
			cancel(fmt.Errorf("%w: %s", ErrInterrupted, sig))
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		close(done)
		cancel(nil)
	}
}
