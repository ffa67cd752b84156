package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrRequestFailed     = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed response")
)

// Kind classifies a RequestError.
type Kind string

const (
	// KindTransport: the request never completed.
	KindTransport Kind = "transport"
	// KindHTTP: the server answered with a non-success status.
	KindHTTP Kind = "http"
	// KindMalformed: a success status with a body that is not the expected
	// JSON, typically an HTML page served by a misconfigured proxy.
	KindMalformed Kind = "malformed"
)

// RequestError is returned by every failing gateway call. Message is meant
// to be shown to the user as is.
type RequestError struct {
	Kind      Kind
	Message   string
	Status    int
	RawBody   string
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause, so that
// errors.Is(err, ErrUnavailable) and errors.Is(err, context.Canceled) both work.
func (e *RequestError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *RequestError) sentinel() error {
	switch e.Kind {
	case KindTransport:
		return ErrUnavailable
	case KindMalformed:
		return ErrMalformedResponse
	}
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrRequestFailed
	}
}

// Message returns the user-facing text of err, falling back to fallback
// when err carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	if s := err.Error(); s != "" {
		return s
	}
	return fallback
}
