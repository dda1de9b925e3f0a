package cryptocompare

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors. Every typed error below matches exactly one of the first
// four with errors.Is.
var (
	// ErrTransport indicates a non-2xx HTTP status or a connection failure.
	ErrTransport = errors.New("http request failed")

	// ErrTimeout indicates no response arrived within the client timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrService indicates the service answered with an error payload.
	ErrService = errors.New("service error")

	// ErrDecode indicates the response body is not valid JSON.
	ErrDecode = errors.New("malformed response")

	// ErrInvalidConfig indicates New was given an unusable configuration.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrUnknownEndpoint indicates a name outside the endpoint catalog.
	ErrUnknownEndpoint = errors.New("unknown endpoint")
)

// TransportError reports a non-2xx response. StatusCode is 0 when the
// request never produced a response; Err then holds the cause.
type TransportError struct {
	Endpoint   EndpointID
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v: %v", e.Endpoint, ErrTransport, e.Err)
	}
	return fmt.Sprintf("%s: server responded with %s", e.Endpoint, e.Status)
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError reports that no response arrived within Timeout.
type TimeoutError struct {
	Endpoint EndpointID
	Timeout  time.Duration
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no response within %s", e.Endpoint, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

func (e *TimeoutError) Unwrap() error { return e.Err }

// ServiceError reports a logical failure returned by the service. Message is
// the server-supplied text, verbatim. Retrying the same call fails the same
// way.
type ServiceError struct {
	Endpoint EndpointID
	Message  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Endpoint, ErrService, e.Message)
}

func (e *ServiceError) Is(target error) bool { return target == ErrService }

// DecodeError reports a 2xx response whose body could not be decoded.
type DecodeError struct {
	Endpoint EndpointID
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Endpoint, ErrDecode, e.Err)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }
