package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a lookup failure.
type Kind int

const (
	// KindConfiguration means the client is missing or holds empty
	// credentials. Raised before any network activity.
	KindConfiguration Kind = iota + 1

	// KindUpstream means the service answered but reported the lookup
	// request as invalid. The message carries the best available detail.
	KindUpstream

	// KindTransport means the HTTP request could not be completed.
	KindTransport

	// KindParse means the response body could not be parsed into an
	// element tree at all.
	KindParse
)

// String returns the label used in error output and log fields.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// LookupError is the error type returned by the lookup client and its
// services.
type LookupError struct {
	Kind    Kind
	Message string
	Details string
	Cause   error
}

func (e *LookupError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

func (e *LookupError) WithCause(cause error) *LookupError {
	e.Cause = cause
	return e
}

// NewConfigurationError reports absent or empty credentials.
func NewConfigurationError(message, details string) *LookupError {
	return &LookupError{Kind: KindConfiguration, Message: message, Details: details}
}

// NewUpstreamError reports a lookup the service marked invalid. message is
// the service-provided error text when one was present.
func NewUpstreamError(message string) *LookupError {
	return &LookupError{Kind: KindUpstream, Message: message}
}

// NewTransportError reports a failed HTTP round trip.
func NewTransportError(message, details string) *LookupError {
	return &LookupError{Kind: KindTransport, Message: message, Details: details}
}

// NewParseError reports a response body that is not well-formed XML.
func NewParseError(message, details string) *LookupError {
	return &LookupError{Kind: KindParse, Message: message, Details: details}
}

// WrapTransportError wraps a network-level cause.
func WrapTransportError(err error, message, details string) *LookupError {
	return &LookupError{Kind: KindTransport, Message: message, Details: details, Cause: err}
}

// WrapParseError wraps a decoder-level cause.
func WrapParseError(err error, message, details string) *LookupError {
	return &LookupError{Kind: KindParse, Message: message, Details: details, Cause: err}
}

// IsKind reports whether err is (or wraps) a LookupError of the given kind.
func IsKind(err error, kind Kind) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}

func IsConfiguration(err error) bool { return IsKind(err, KindConfiguration) }

func IsUpstream(err error) bool { return IsKind(err, KindUpstream) }

func IsTransport(err error) bool { return IsKind(err, KindTransport) }

func IsParse(err error) bool { return IsKind(err, KindParse) }
