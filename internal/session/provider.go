package session

import (
	"context"
	"sync/atomic"
)

// Provider scopes access to the session capability. The UI layer only ever
// holds what Session() hands out; asking for it after the provider is closed,
// or from a context that never saw one, is a defect in the caller and fails
// loudly instead of silently returning defaults.
type Provider struct {
	client *Client
	closed atomic.Bool
}

// NewProvider wraps a client in a provider scope.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Session returns the session capability. Panics after Close.
func (p *Provider) Session() *Client {
	if p.closed.Load() {
		panic("session: provider used after Close")
	}
	return p.client
}

// Close ends the provider scope.
func (p *Provider) Close() {
	p.closed.Store(true)
}

type ctxKey struct{}

// NewContext attaches a provider to a context.
func NewContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the session capability from a provider-carrying
// context. Panics when called outside a provider scope.
func FromContext(ctx context.Context) *Client {
	p, ok := ctx.Value(ctxKey{}).(*Provider)
	if !ok {
		panic("session: FromContext called outside a provider scope")
	}
	return p.Session()
}
