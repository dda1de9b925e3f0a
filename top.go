package cryptocompare

import "context"

// Default list lengths.
const (
	DefaultTopExchangesLimit   = 5
	DefaultTopVolumesLimit     = 21
	DefaultTopPairsLimit       = 5
	DefaultTopTotalVolumeLimit = 10
)

// TopOptions are the optional parameters of the top-N endpoints.
type TopOptions struct {
	// Limit is the list length. <= 0 means the endpoint default.
	Limit int
}

// TopTotalVolumeOptions are the optional parameters of TopTotalVolume.
type TopTotalVolumeOptions struct {
	Limit int
	// Page is sent as given; the service counts pages from 0.
	Page int
}

// TopExchanges returns the top exchanges by volume for a pair.
func (c *Client) TopExchanges(ctx context.Context, from, to string, opts TopOptions) (any, error) {
	p := newParams().
		set("fsym", from).
		set("tsym", to).
		setInt("limit", intOrDefault(opts.Limit, DefaultTopExchangesLimit))
	return c.get(ctx, EndpointTopExchanges, p)
}

// TopExchangesFull returns the top exchanges by volume for a pair along with
// the full aggregated data.
func (c *Client) TopExchangesFull(ctx context.Context, from, to string, opts TopOptions) (any, error) {
	p := newParams().
		set("fsym", from).
		set("tsym", to).
		setInt("limit", intOrDefault(opts.Limit, DefaultTopExchangesLimit))
	return c.get(ctx, EndpointTopExchangesFull, p)
}

// TopVolumes returns the top coins by volume in to.
func (c *Client) TopVolumes(ctx context.Context, to string, opts TopOptions) (any, error) {
	p := newParams().
		set("tsym", to).
		setInt("limit", intOrDefault(opts.Limit, DefaultTopVolumesLimit))
	return c.get(ctx, EndpointTopVolumes, p)
}

// TopPairs returns the top trading pairs by volume for from.
func (c *Client) TopPairs(ctx context.Context, from string, opts TopOptions) (any, error) {
	p := newParams().
		set("fsym", from).
		setInt("limit", intOrDefault(opts.Limit, DefaultTopPairsLimit))
	return c.get(ctx, EndpointTopPairs, p)
}

// TopTotalVolume returns coins ranked by their total volume across all
// markets, priced in to.
func (c *Client) TopTotalVolume(ctx context.Context, to string, opts TopTotalVolumeOptions) (any, error) {
	p := newParams().
		set("tsym", to).
		setInt("limit", intOrDefault(opts.Limit, DefaultTopTotalVolumeLimit)).
		setInt("page", opts.Page)
	return c.get(ctx, EndpointTopTotalVolume, p)
}
