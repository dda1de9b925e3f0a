package cryptocompare

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultExchange is the service's aggregated index, used when no exchange
// is given.
const DefaultExchange = "CCCAGG"

// Symbols is a list-valued parameter. A single symbol and a one-element
// list serialize identically.
type Symbols []string

// Syms builds Symbols from one or more values.
func Syms(first string, rest ...string) Symbols {
	return append(Symbols{first}, rest...)
}

// String joins the symbols with "," in the order given.
func (s Symbols) String() string {
	return strings.Join(s, ",")
}

// CalculationType selects how historical daily prices are computed.
// The zero value means Close.
type CalculationType string

const (
	// Close is the close price of the day.
	Close CalculationType = "Close"
	// MidHighLow is the average of the 24h high and low.
	MidHighLow CalculationType = "MidHighLow"
	// VolFVolT is the total volume to divided by the total volume from.
	VolFVolT CalculationType = "VoIFVoIT"
)

func (c CalculationType) orDefault() CalculationType {
	if c == "" {
		return Close
	}
	return c
}

// params is an insertion-ordered query parameter mapping.
type params struct {
	keys   []string
	values map[string]string
}

func newParams() *params {
	return &params{values: make(map[string]string)}
}

// set adds or replaces key. Replacing keeps the original position.
func (p *params) set(key, value string) *params {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

func (p *params) setInt(key string, v int) *params {
	return p.set(key, strconv.Itoa(v))
}

func (p *params) setBool(key string, v bool) *params {
	return p.set(key, strconv.FormatBool(v))
}

// setListOpt sets key only when s is non-empty.
func (p *params) setListOpt(key string, s Symbols) *params {
	if len(s) == 0 {
		return p
	}
	return p.set(key, s.String())
}

// setTimeOpt sets key to Unix seconds only when t is not the zero time.
func (p *params) setTimeOpt(key string, t time.Time) *params {
	if t.IsZero() {
		return p
	}
	return p.set(key, strconv.FormatInt(t.Unix(), 10))
}

// encode renders the query string in insertion order.
func (p *params) encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

func exchangeOrDefault(e string) string {
	if e == "" {
		return DefaultExchange
	}
	return e
}

func intOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
