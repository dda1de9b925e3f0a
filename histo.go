package cryptocompare

import (
	"context"
	"time"
)

// Default series lengths.
const (
	DefaultDayLimit    = 31
	DefaultHourLimit   = 170
	DefaultMinuteLimit = 170
)

// HistoOptions are the optional parameters of the OHLCV series endpoints.
type HistoOptions struct {
	// Exchange to obtain data from. Empty means DefaultExchange.
	Exchange string
	// DisableConversion sends tryConversion=false.
	DisableConversion bool
	// Aggregate groups this many periods into one point. <= 0 means 1.
	Aggregate int
	// Limit is the number of points. <= 0 means the endpoint default.
	Limit int
	// To ends the series at this instant. Zero means now.
	To time.Time
}

// HistoDayOptions adds the daily-only parameters to HistoOptions.
type HistoDayOptions struct {
	HistoOptions
	// AllData returns the whole available history.
	AllData bool
}

func (o HistoOptions) apply(p *params, defaultLimit int) *params {
	return p.set("e", exchangeOrDefault(o.Exchange)).
		setBool("tryConversion", !o.DisableConversion).
		setInt("aggregate", intOrDefault(o.Aggregate, 1)).
		setInt("limit", intOrDefault(o.Limit, defaultLimit))
}

// HistoDay returns daily close, high, low, open and volumes.
func (c *Client) HistoDay(ctx context.Context, from, to string, opts HistoDayOptions) (any, error) {
	p := opts.apply(newParams().set("fsym", from).set("tsym", to), DefaultDayLimit)
	if opts.AllData {
		p.setBool("allData", true)
	}
	p.setTimeOpt("toTs", opts.To)
	return c.get(ctx, EndpointHistoDay, p)
}

// HistoHour returns hourly close, high, low, open and volumes.
func (c *Client) HistoHour(ctx context.Context, from, to string, opts HistoOptions) (any, error) {
	p := opts.apply(newParams().set("fsym", from).set("tsym", to), DefaultHourLimit)
	p.setTimeOpt("toTs", opts.To)
	return c.get(ctx, EndpointHistoHour, p)
}

// HistoMinute returns minute close, high, low, open and volumes.
func (c *Client) HistoMinute(ctx context.Context, from, to string, opts HistoOptions) (any, error) {
	p := opts.apply(newParams().set("fsym", from).set("tsym", to), DefaultMinuteLimit)
	p.setTimeOpt("toTs", opts.To)
	return c.get(ctx, EndpointHistoMinute, p)
}

// PriceHistoricalOptions are the optional parameters of PriceHistorical.
type PriceHistoricalOptions struct {
	// At is the instant to price. Zero lets the service use now.
	At                time.Time
	Exchange          string
	DisableConversion bool
	Calculation       CalculationType
}

// PriceHistorical returns the price of from in to at a point in time.
func (c *Client) PriceHistorical(ctx context.Context, from, to string, opts PriceHistoricalOptions) (any, error) {
	p := newParams().
		set("fsym", from).
		set("tsym", to).
		set("e", exchangeOrDefault(opts.Exchange)).
		setBool("tryConversion", !opts.DisableConversion).
		set("calculationType", string(opts.Calculation.orDefault())).
		setTimeOpt("ts", opts.At)
	return c.get(ctx, EndpointPriceHistorical, p)
}

// DayAverageOptions are the optional parameters of DayAverage.
type DayAverageOptions struct {
	// To is the day to average. Zero means today.
	To                time.Time
	Exchange          string
	DisableConversion bool
	AvgType           CalculationType
	// UTCHourDiff shifts the day boundary by this many hours.
	UTCHourDiff int
}

// DayAverage returns the average price of a pair over one day.
func (c *Client) DayAverage(ctx context.Context, from, to string, opts DayAverageOptions) (any, error) {
	p := newParams().
		set("fsym", from).
		set("tsym", to).
		set("e", exchangeOrDefault(opts.Exchange)).
		setBool("tryConversion", !opts.DisableConversion).
		set("avgType", string(opts.AvgType.orDefault())).
		setInt("UTCHourDiff", opts.UTCHourDiff).
		setTimeOpt("toTs", opts.To)
	return c.get(ctx, EndpointDayAverage, p)
}
