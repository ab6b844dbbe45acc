package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("missing credentials", "access key is empty")

	assert.NotNil(t, err)
	assert.Equal(t, KindConfiguration, err.Kind)
	assert.Equal(t, "missing credentials", err.Message)
	assert.Equal(t, "access key is empty", err.Details)
}

func TestNewUpstreamError(t *testing.T) {
	err := NewUpstreamError("Item not found")

	assert.NotNil(t, err)
	assert.Equal(t, KindUpstream, err.Kind)
	assert.Equal(t, "Item not found", err.Message)
	assert.Empty(t, err.Details)
}

func TestLookupError_Error(t *testing.T) {
	err := NewConfigurationError("missing credentials", "secret key is empty")

	errorMsg := err.Error()

	assert.Contains(t, errorMsg, "configuration")
	assert.Contains(t, errorMsg, "missing credentials")
	assert.Contains(t, errorMsg, "secret key is empty")
}

func TestLookupError_Error_NoDetails(t *testing.T) {
	err := NewUpstreamError("Item not found")

	assert.Equal(t, "[upstream] Item not found", err.Error())
}

func TestLookupError_WithCause(t *testing.T) {
	originalErr := errors.New("connection refused")
	err := NewTransportError("request failed", "").WithCause(originalErr)

	assert.NotNil(t, err)
	assert.Equal(t, originalErr, err.Cause)
	assert.ErrorIs(t, err, originalErr)
}

func TestWrapTransportError(t *testing.T) {
	originalErr := errors.New("dial tcp: i/o timeout")
	err := WrapTransportError(originalErr, "request failed", "GET timed out")

	assert.NotNil(t, err)
	assert.Equal(t, KindTransport, err.Kind)
	assert.Equal(t, originalErr, err.Cause)
}

func TestWrapParseError(t *testing.T) {
	originalErr := errors.New("XML syntax error on line 3")
	err := WrapParseError(originalErr, "malformed response", "")

	assert.Equal(t, KindParse, err.Kind)
	assert.ErrorIs(t, err, originalErr)
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		want bool
	}{
		{"Configuration", NewConfigurationError("missing", ""), KindConfiguration, true},
		{"Upstream", NewUpstreamError("invalid"), KindUpstream, true},
		{"Transport", NewTransportError("failed", ""), KindTransport, true},
		{"Parse", NewParseError("bad xml", ""), KindParse, true},
		{"Mismatch", NewUpstreamError("invalid"), KindTransport, false},
		{"Plain error", errors.New("plain"), KindUpstream, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsKind(tt.err, tt.kind))
		})
	}
}

func TestIsKind_Wrapped(t *testing.T) {
	inner := NewUpstreamError("Item not found")
	wrapped := fmt.Errorf("lookup failed: %w", inner)

	assert.True(t, IsUpstream(wrapped))
	assert.False(t, IsTransport(wrapped))
}

func TestKind_String_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", Kind(99).String())
}
