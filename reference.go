package cryptocompare

import (
	"context"
	"time"
)

// DefaultNewsLang is the language requested when NewsOptions.Lang is empty.
const DefaultNewsLang = "EN"

// SubsWatchlist returns streamer subscriptions together with pricing info
// for every from symbol in to.
func (c *Client) SubsWatchlist(ctx context.Context, from Symbols, to string) (any, error) {
	p := newParams().
		set("fsyms", from.String()).
		set("tsym", to)
	return c.get(ctx, EndpointSubsWatchlist, p)
}

// Subs returns the streamer subscription channels of from. An empty to
// lists every pair.
func (c *Client) Subs(ctx context.Context, from string, to Symbols) (any, error) {
	p := newParams().
		set("fsym", from).
		setListOpt("tsyms", to)
	return c.get(ctx, EndpointSubs, p)
}

// NewsProviders lists the integrated news providers.
func (c *Client) NewsProviders(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointNewsProviders, newParams())
}

// NewsOptions are the optional parameters of News.
type NewsOptions struct {
	// Feeds restricts articles to these provider keys. Empty means all.
	Feeds Symbols
	// Before returns articles published before this instant. Zero means
	// latest.
	Before time.Time
	// Lang is the article language. Empty means DefaultNewsLang.
	Lang string
}

// News returns the latest news articles.
func (c *Client) News(ctx context.Context, opts NewsOptions) (any, error) {
	lang := opts.Lang
	if lang == "" {
		lang = DefaultNewsLang
	}
	p := newParams().
		set("lang", lang).
		setListOpt("feeds", opts.Feeds).
		setTimeOpt("lTs", opts.Before)
	return c.get(ctx, EndpointNews, p)
}

// Exchanges lists every integrated exchange with its traded pairs.
func (c *Client) Exchanges(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointExchanges, newParams())
}

// Coins lists every coin known to the service.
func (c *Client) Coins(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointCoins, newParams())
}

// RateLimit reports the caller's remaining request budget.
func (c *Client) RateLimit(ctx context.Context) (any, error) {
	return c.get(ctx, EndpointRateLimit, newParams())
}
