// File: internal/services/errors.go

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind separates "no network path to the backend" from every other
// forwarding failure.
type ErrorKind int

const (
	// KindFailed covers timeouts, unreadable bodies and non-JSON success bodies.
	KindFailed ErrorKind = iota
	// KindUnreachable means the connection could not be established at all.
	KindUnreachable
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	default:
		return "failed"
	}
}

var (
	ErrInvalidJSON    = errors.New("backend returned invalid JSON")
	ErrInvalidPayload = errors.New("payload cannot be encoded as JSON")
)

// BackendError is returned for every failed call to the search backend
type BackendError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, KindFailed when err is not a BackendError
func KindOf(err error) ErrorKind {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindFailed
}

// classify maps a transport error from http.Client.Do to an ErrorKind.
// Timeouts are checked first: a dial that times out is a failure, not
// an unreachable backend.
func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindFailed
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindFailed
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindUnreachable
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindUnreachable
	}

	return KindFailed
}
