package cryptocompare

import (
	"fmt"
	"time"
)

// BaseURL is the fixed host every endpoint path is appended to.
const BaseURL = "https://min-api.cryptocompare.com"

// RateLimitGroup tags endpoints that share one throttling budget on the
// remote service. The client only reports it.
type RateLimitGroup string

const (
	GroupPrice  RateLimitGroup = "PRICE"
	GroupHisto  RateLimitGroup = "HISTO"
	GroupNews   RateLimitGroup = "NEWS"
	GroupStrict RateLimitGroup = "STRICT"
	GroupNone   RateLimitGroup = "NONE"
)

// RateLimitGroups lists every group in declaration order.
var RateLimitGroups = []RateLimitGroup{GroupPrice, GroupHisto, GroupNews, GroupStrict, GroupNone}

// Valid reports whether g is one of the known groups.
func (g RateLimitGroup) Valid() bool {
	switch g {
	case GroupPrice, GroupHisto, GroupNews, GroupStrict, GroupNone:
		return true
	}
	return false
}

// EndpointID identifies one remote operation.
type EndpointID int

const (
	EndpointPrice EndpointID = iota
	EndpointPriceMulti
	EndpointPriceMultiFull
	EndpointGenerateAverage
	EndpointHistoDay
	EndpointHistoHour
	EndpointHistoMinute
	EndpointPriceHistorical
	EndpointDayAverage
	EndpointTopExchanges
	EndpointTopExchangesFull
	EndpointTopVolumes
	EndpointTopPairs
	EndpointTopTotalVolume
	EndpointSubsWatchlist
	EndpointSubs
	EndpointNewsProviders
	EndpointNews
	EndpointExchanges
	EndpointCoins
	EndpointRateLimit

	endpointCount
)

// Endpoint is the static description of one remote operation.
type Endpoint struct {
	ID   EndpointID
	Name string
	Path string
	// CacheSeconds is how long the service considers a response fresh.
	CacheSeconds int
	Group        RateLimitGroup
}

// URL returns the fully-qualified URL of the endpoint.
func (e Endpoint) URL() string {
	return BaseURL + e.Path
}

// CacheTTL returns the caching hint as a duration.
func (e Endpoint) CacheTTL() time.Duration {
	return time.Duration(e.CacheSeconds) * time.Second
}

// catalog is indexed by EndpointID.
var catalog = [endpointCount]Endpoint{
	EndpointPrice:            {EndpointPrice, "price", "/data/price", 10, GroupPrice},
	EndpointPriceMulti:       {EndpointPriceMulti, "price-multi", "/data/pricemulti", 10, GroupPrice},
	EndpointPriceMultiFull:   {EndpointPriceMultiFull, "price-multi-full", "/data/pricemultifull", 10, GroupPrice},
	EndpointGenerateAverage:  {EndpointGenerateAverage, "generate-avg", "/data/generateAvg", 10, GroupPrice},
	EndpointHistoDay:         {EndpointHistoDay, "histo-day", "/data/histoday", 610, GroupHisto},
	EndpointHistoHour:        {EndpointHistoHour, "histo-hour", "/data/histohour", 610, GroupHisto},
	EndpointHistoMinute:      {EndpointHistoMinute, "histo-minute", "/data/histominute", 40, GroupHisto},
	EndpointPriceHistorical:  {EndpointPriceHistorical, "price-historical", "/data/pricehistorical", 86400, GroupHisto},
	EndpointDayAverage:       {EndpointDayAverage, "day-avg", "/data/dayAvg", 610, GroupHisto},
	EndpointTopExchanges:     {EndpointTopExchanges, "top-exchanges", "/data/top/exchanges", 120, GroupPrice},
	EndpointTopExchangesFull: {EndpointTopExchangesFull, "top-exchanges-full", "/data/top/exchange/full", 120, GroupPrice},
	EndpointTopVolumes:       {EndpointTopVolumes, "top-volumes", "/data/top/volumes", 120, GroupPrice},
	EndpointTopPairs:         {EndpointTopPairs, "top-pairs", "/data/top/pairs", 120, GroupPrice},
	EndpointTopTotalVolume:   {EndpointTopTotalVolume, "top-total-volume", "/data/top/totalvol", 120, GroupPrice},
	EndpointSubsWatchlist:    {EndpointSubsWatchlist, "subs-watchlist", "/data/subsWatchlist", 60, GroupPrice},
	EndpointSubs:             {EndpointSubs, "subs", "/data/subs", 10, GroupPrice},
	EndpointNewsProviders:    {EndpointNewsProviders, "news-providers", "/data/news/providers", 120, GroupNews},
	EndpointNews:             {EndpointNews, "news", "/data/news/", 120, GroupNews},
	EndpointExchanges:        {EndpointExchanges, "all-exchanges", "/data/all/exchanges", 60, GroupPrice},
	EndpointCoins:            {EndpointCoins, "all-coins", "/data/all/coinlist", 60, GroupPrice},
	EndpointRateLimit:        {EndpointRateLimit, "rate-limit", "/stats/rate/limit", 1, GroupNone},
}

// Lookup returns the catalog entry for id.
func Lookup(id EndpointID) (Endpoint, bool) {
	if id < 0 || id >= endpointCount {
		return Endpoint{}, false
	}
	return catalog[id], true
}

// ParseEndpoint finds an endpoint by its Name.
func ParseEndpoint(name string) (Endpoint, error) {
	for _, e := range catalog {
		if e.Name == name {
			return e, nil
		}
	}
	return Endpoint{}, fmt.Errorf("%q: %w", name, ErrUnknownEndpoint)
}

// Endpoints returns a copy of the catalog in EndpointID order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(catalog))
	copy(out, catalog[:])
	return out
}

// String returns the endpoint name, or "EndpointID(n)" outside the catalog.
func (id EndpointID) String() string {
	if e, ok := Lookup(id); ok {
		return e.Name
	}
	return fmt.Sprintf("EndpointID(%d)", int(id))
}
