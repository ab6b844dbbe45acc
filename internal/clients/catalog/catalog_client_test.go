package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paapi-lookup/internal/config"
	"paapi-lookup/internal/utils"
	"paapi-lookup/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAPIConfig() config.APIConfig {
	return config.APIConfig{
		Scheme:         "http",
		Host:           "webservices.amazon.com",
		Path:           "/onca/xml",
		TimeoutSeconds: 2,
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<ItemLookupResponse></ItemLookupResponse>`))
	}))
	defer server.Close()

	client := NewClient(testAPIConfig(), zap.NewNop())

	status, body, err := client.Fetch(context.Background(), server.URL+"/onca/xml?Service=AWSECommerceService")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `<ItemLookupResponse></ItemLookupResponse>`, string(body))
}

func TestClient_Fetch_NonOKStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`SignatureDoesNotMatch`))
	}))
	defer server.Close()

	client := NewClient(testAPIConfig(), zap.NewNop())

	status, body, err := client.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "SignatureDoesNotMatch", string(body))
}

func TestClient_Fetch_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := NewClient(testAPIConfig(), zap.NewNop())

	status, body, err := client.Fetch(context.Background(), serverURL)

	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
	assert.Zero(t, status)
	assert.Nil(t, body)
}

func TestClient_Fetch_InvalidURL(t *testing.T) {
	client := NewClient(testAPIConfig(), zap.NewNop())

	status, body, err := client.Fetch(context.Background(), "://not-a-url")

	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
	assert.Zero(t, status)
	assert.Nil(t, body)
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(testAPIConfig(), zap.NewNop())

	_, _, err := client.Fetch(ctx, server.URL)

	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}

func TestClient_Fetch_SendsTraceparent(t *testing.T) {
	var traceparent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(testAPIConfig(), zap.NewNop())

	_, _, err := client.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Len(t, strings.Split(traceparent, "-"), 4)
	assert.Equal(t, 32, len(utils.ExtractTraceID(traceparent)))
}
