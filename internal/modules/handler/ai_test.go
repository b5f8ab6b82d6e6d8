package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/unidash/unidash/internal/infra/llm"
	"github.com/unidash/unidash/internal/modules/service"
)

func newAIRouter(svc *MockAIRefreshService) *gin.Engine {
	h := NewAIHandler(svc)
	r := gin.New()
	r.POST("/views/:view_id/ai-refresh", h.RefreshView)
	r.POST("/ai", h.Generate)
	return r
}

func TestAIHandler_RefreshView(t *testing.T) {
	setupTest(t)

	partial := &service.RefreshOutput{
		ViewID:       1,
		Universities: 1,
		Updated:      []service.RefreshedCell{{UniversityID: 1, ColumnKey: "tuition", NewValue: strPtr("57986"), Confidence: 0.9}},
	}

	tests := []struct {
		name           string
		body           string
		setup          func(*MockAIRefreshService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "empty body refreshes everything",
			body: "",
			setup: func(svc *MockAIRefreshService) {
				svc.On("Refresh", mock.Anything, uint(1), service.RefreshInput{}).Return(partial, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				data := decodeResponse(t, w).Data.(map[string]interface{})
				assert.Len(t, data["updated"].([]interface{}), 1)
			},
		},
		{
			name: "selected universities and columns",
			body: `{"university_ids":[3,1],"column_keys":["tuition"]}`,
			setup: func(svc *MockAIRefreshService) {
				svc.On("Refresh", mock.Anything, uint(1), service.RefreshInput{
					UniversityIDs: []uint{3, 1},
					ColumnKeys:    []string{"tuition"},
				}).Return(partial, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "provider failure keeps partial result",
			body: `{}`,
			setup: func(svc *MockAIRefreshService) {
				svc.On("Refresh", mock.Anything, uint(1), mock.Anything).
					Return(partial, fmt.Errorf("%w: Stanford: rate limited", service.ErrUpstream))
			},
			expectedStatus: http.StatusBadGateway,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeResponse(t, w)
				assert.Equal(t, http.StatusBadGateway, resp.Code)
				data := resp.Data.(map[string]interface{})
				assert.Len(t, data["updated"].([]interface{}), 1)
				assert.Contains(t, resp.Error, "rate limited")
			},
		},
		{
			name: "provider not configured",
			body: `{}`,
			setup: func(svc *MockAIRefreshService) {
				svc.On("Refresh", mock.Anything, uint(1), mock.Anything).
					Return(nil, fmt.Errorf("%w: %w", service.ErrUpstream, llm.ErrNotConfigured))
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "hidden column requested",
			body: `{"column_keys":["secret"]}`,
			setup: func(svc *MockAIRefreshService) {
				svc.On("Refresh", mock.Anything, uint(1), mock.Anything).
					Return(nil, fmt.Errorf("%w: column secret is not visible", service.ErrValidation))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"university_ids":"all"}`,
			setup:          func(svc *MockAIRefreshService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAIRefreshService)
			tt.setup(svc)
			w := doRequest(newAIRouter(svc), http.MethodPost, "/views/1/ai-refresh", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAIHandler_Generate(t *testing.T) {
	setupTest(t)

	svc := new(MockAIRefreshService)
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.University.Name == "MIT" && len(req.Columns) == 1 && req.Columns[0].Key == "tuition"
	})).Return([]llm.Result{{ColumnKey: "tuition", Value: 57986.0, Source: "mit.edu", Confidence: 0.8}}, nil)
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.University.Name == ""
	})).Return(nil, fmt.Errorf("%w: university name is required", service.ErrValidation))
	r := newAIRouter(svc)

	w := doRequest(r, http.MethodPost, "/ai", `{"university":{"name":"MIT"},"columns":[{"key":"tuition","label":"Tuition","type":"number"}]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	results := decodeResponse(t, w).Data.([]interface{})
	assert.Len(t, results, 1)
	assert.Equal(t, "tuition", results[0].(map[string]interface{})["columnKey"])

	w = doRequest(r, http.MethodPost, "/ai", `{"university":{},"columns":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}
