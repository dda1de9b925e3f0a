// Package throttle paces calls per rate-limit group on the caller side.
// The client never throttles; commands that fan out wait here first.
package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	cryptocompare "github.com/alnah/go-cryptocompare"
)

// Limit is the sustained rate and burst allowed for one group.
type Limit struct {
	PerSecond float64
	Burst     int
}

// DefaultLimits stay below the free tier's per-second budgets.
var DefaultLimits = map[cryptocompare.RateLimitGroup]Limit{
	cryptocompare.GroupPrice:  {PerSecond: 15, Burst: 15},
	cryptocompare.GroupHisto:  {PerSecond: 8, Burst: 8},
	cryptocompare.GroupNews:   {PerSecond: 5, Burst: 5},
	cryptocompare.GroupStrict: {PerSecond: 1, Burst: 1},
}

// Throttle holds one limiter per group. It is safe for concurrent use.
type Throttle struct {
	limiters map[cryptocompare.RateLimitGroup]*rate.Limiter
}

// New creates a Throttle from limits. Groups without an entry, and
// GroupNone, are never throttled.
func New(limits map[cryptocompare.RateLimitGroup]Limit) *Throttle {
	t := &Throttle{limiters: make(map[cryptocompare.RateLimitGroup]*rate.Limiter, len(limits))}
	for g, l := range limits {
		if g == cryptocompare.GroupNone || l.PerSecond <= 0 {
			continue
		}
		burst := max(l.Burst, 1)
		t.limiters[g] = rate.NewLimiter(rate.Limit(l.PerSecond), burst)
	}
	return t
}

// Wait blocks until a call in group may proceed or ctx is done.
func (t *Throttle) Wait(ctx context.Context, group cryptocompare.RateLimitGroup) error {
	lim, ok := t.limiters[group]
	if !ok {
		return nil
	}
	if err := lim.Wait(ctx); err != nil {
		return fmt.Errorf("throttle %s: %w", group, err)
	}
	return nil
}

// WaitEndpoint waits on the group of the given endpoint.
func (t *Throttle) WaitEndpoint(ctx context.Context, id cryptocompare.EndpointID) error {
	ep, ok := cryptocompare.Lookup(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, cryptocompare.ErrUnknownEndpoint)
	}
	return t.Wait(ctx, ep.Group)
}
