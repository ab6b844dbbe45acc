package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockMetricsService struct {
	mock.Mock
}

func (m *MockMetricsService) RecordSimulatorRequest(path, status string) {
	m.Called(path, status)
}

func (m *MockMetricsService) RecordSimulatorRequestDuration(path string, duration time.Duration) {
	m.Called(path, duration)
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		statusCode     int
		expectedStatus string
	}{
		{
			name:           "successful request",
			path:           "/onca/xml",
			statusCode:     200,
			expectedStatus: "success",
		},
		{
			name:           "signature mismatch",
			path:           "/onca/xml",
			statusCode:     403,
			expectedStatus: "client_error",
		},
		{
			name:           "server error",
			path:           "/onca/xml",
			statusCode:     500,
			expectedStatus: "server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMetrics := new(MockMetricsService)
			logger := zap.NewNop()

			mockMetrics.On("RecordSimulatorRequest", tt.path, tt.expectedStatus).Once()
			mockMetrics.On("RecordSimulatorRequestDuration", tt.path, mock.AnythingOfType("time.Duration")).Once()

			router := gin.New()
			router.Use(MetricsMiddleware(mockMetrics, logger))
			router.GET(tt.path, func(c *gin.Context) {
				c.Status(tt.statusCode)
			})

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.statusCode, w.Code)
			mockMetrics.AssertExpectations(t)
		})
	}
}

func TestMetricsMiddleware_UnroutedPathFallsBackToURLPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockMetrics := new(MockMetricsService)
	logger := zap.NewNop()

	mockMetrics.On("RecordSimulatorRequest", "/no-such-route", "client_error").Once()
	mockMetrics.On("RecordSimulatorRequestDuration", "/no-such-route", mock.AnythingOfType("time.Duration")).Once()

	router := gin.New()
	router.Use(MetricsMiddleware(mockMetrics, logger))

	req := httptest.NewRequest("GET", "/no-such-route", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsMiddleware_RecordsDuration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockMetrics := new(MockMetricsService)
	logger := zap.NewNop()

	var recordedDuration time.Duration
	mockMetrics.On("RecordSimulatorRequest", "/onca/xml", "success").Once()
	mockMetrics.On("RecordSimulatorRequestDuration", "/onca/xml", mock.AnythingOfType("time.Duration")).
		Run(func(args mock.Arguments) {
			recordedDuration = args.Get(1).(time.Duration)
		}).Once()

	router := gin.New()
	router.Use(MetricsMiddleware(mockMetrics, logger))
	router.GET("/onca/xml", func(c *gin.Context) {
		time.Sleep(10 * time.Millisecond)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/onca/xml", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, recordedDuration, 10*time.Millisecond)
	mockMetrics.AssertExpectations(t)
}
