// Package cryptocompare is a client for the public CryptoCompare
// market-data REST API (https://min-api.cryptocompare.com).
//
// Every remote operation is described by a static [Endpoint] in a closed
// catalog carrying its relative path, caching hint and rate-limit group.
// A [Client] exposes one method per endpoint; each method builds the query
// parameters and funnels through a single dispatch routine that performs one
// HTTP GET and classifies the outcome.
//
// Failures are reported as one of four error kinds, each matching a sentinel
// with errors.Is:
//
//   - *TransportError (ErrTransport): non-2xx status or connection failure
//   - *TimeoutError (ErrTimeout): no response within the configured timeout
//   - *ServiceError (ErrService): the payload reports {"Response": "Error"}
//   - *DecodeError (ErrDecode): the body is not valid JSON
//
// The client never retries, caches or throttles. Caching hints and
// rate-limit groups are metadata for callers that want to do so.
package cryptocompare
