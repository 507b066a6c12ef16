// Package demo routes read-side services to fixture implementations
// for identities that logged in through the demo flow.
package demo

import (
	"context"
	"errors"
)

var ErrDemoReadOnly = errors.New("demo mode is read-only")

type ctxKey struct{}

// WithDemo marks the request context.
func WithDemo(ctx context.Context, isDemo bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, isDemo)
}

func IsDemo(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKey{}).(bool)
	return v
}

// Selector holds the live and fixture implementation of one service interface.
type Selector[T any] struct {
	Live    T
	Fixture T
}

func NewSelector[T any](live, fixture T) Selector[T] {
	return Selector[T]{Live: live, Fixture: fixture}
}

// For returns the fixture implementation for demo requests.
func (s Selector[T]) For(ctx context.Context) T {
	if IsDemo(ctx) {
		return s.Fixture
	}
	return s.Live
}
