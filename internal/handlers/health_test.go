package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(p *MockPinger)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "database reachable",
			setupMocks: func(p *MockPinger) {
				p.EXPECT().PingContext(gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name: "database unreachable",
			setupMocks: func(p *MockPinger) {
				p.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pinger := NewMockPinger(ctrl)
			tt.setupMocks(pinger)

			rec := httptest.NewRecorder()
			NewHealthHandler(pinger)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedBody, resp.Status)
		})
	}

	t.Run("no database configured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealthHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
	})
}
