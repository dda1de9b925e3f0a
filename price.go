package cryptocompare

import "context"

// PriceOptions are the optional parameters of the current-price endpoints.
type PriceOptions struct {
	// Exchange to obtain data from. Empty means DefaultExchange.
	Exchange string
	// DisableConversion asks for direct trading values only
	// (tryConversion=false).
	DisableConversion bool
}

func (o PriceOptions) apply(p *params) *params {
	return p.set("e", exchangeOrDefault(o.Exchange)).
		setBool("tryConversion", !o.DisableConversion)
}

// AverageOptions are the optional parameters of GenerateAverage.
type AverageOptions struct {
	// Exchange to compute the average over. Empty means DefaultExchange.
	Exchange string
}

// Price returns the current price of from in every symbol of to.
//
// Response shape: {"USD": 50000, "EUR": 46000}.
func (c *Client) Price(ctx context.Context, from string, to Symbols, opts PriceOptions) (any, error) {
	p := newParams().
		set("fsym", from).
		set("tsyms", to.String())
	return c.get(ctx, EndpointPrice, opts.apply(p))
}

// PriceMulti returns the current price matrix of every from symbol in every
// to symbol.
//
// Response shape: {"BTC": {"USD": 50000}, "ETH": {"USD": 3000}}.
func (c *Client) PriceMulti(ctx context.Context, from, to Symbols, opts PriceOptions) (any, error) {
	p := newParams().
		set("fsyms", from.String()).
		set("tsyms", to.String())
	return c.get(ctx, EndpointPriceMulti, opts.apply(p))
}

// PriceMultiFull returns all current trading info (price, volume, open,
// high, low, ...) under "RAW" and "DISPLAY" keys.
func (c *Client) PriceMultiFull(ctx context.Context, from, to Symbols, opts PriceOptions) (any, error) {
	p := newParams().
		set("fsyms", from.String()).
		set("tsyms", to.String())
	return c.get(ctx, EndpointPriceMultiFull, opts.apply(p))
}

// GenerateAverage computes the current trading info of a pair as a volume
// weighted average.
func (c *Client) GenerateAverage(ctx context.Context, from, to string, opts AverageOptions) (any, error) {
	p := newParams().
		set("fsym", from).
		set("tsym", to).
		set("e", exchangeOrDefault(opts.Exchange))
	return c.get(ctx, EndpointGenerateAverage, p)
}
