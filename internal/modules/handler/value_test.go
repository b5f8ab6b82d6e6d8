package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/service"
)

func newValueRouter(vals *MockValueService, formats *MockCellFormatService) *gin.Engine {
	vh := NewValueHandler(vals)
	fh := NewCellFormatHandler(formats)
	r := gin.New()
	r.GET("/values", vh.GetValue)
	r.POST("/values", vh.UpsertValue)
	r.GET("/cell-formats/:view_id", fh.GetCellFormats)
	r.POST("/cell-formats", fh.SetCellFormat)
	r.DELETE("/cell-formats", fh.ClearCellFormat)
	return r
}

func strPtr(s string) *string { return &s }

func TestValueHandler_UpsertValue(t *testing.T) {
	setupTest(t)

	tests := []struct {
		name           string
		body           string
		want           *string
		expectedStatus int
	}{
		{name: "string", body: `{"university_id":1,"column_key":"city","view_id":2,"value":"Boston"}`, want: strPtr("Boston"), expectedStatus: http.StatusOK},
		{name: "number", body: `{"university_id":1,"column_key":"tuition","view_id":2,"value":57986}`, want: strPtr("57986"), expectedStatus: http.StatusOK},
		{name: "boolean", body: `{"university_id":1,"column_key":"gre","view_id":2,"value":false}`, want: strPtr("false"), expectedStatus: http.StatusOK},
		{name: "null clears", body: `{"university_id":1,"column_key":"city","view_id":2,"value":null}`, expectedStatus: http.StatusOK},
		{name: "missing view", body: `{"university_id":1,"column_key":"city","value":"x"}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := new(MockValueService)
			if tt.expectedStatus == http.StatusOK {
				vals.On("Upsert", mock.Anything, mock.MatchedBy(func(in service.UpsertCellInput) bool {
					if in.UniversityID != 1 || in.ViewID != 2 {
						return false
					}
					if tt.want == nil {
						return in.Value == nil
					}
					return in.Value != nil && *in.Value == *tt.want
				})).Return(&model.Value{UniversityID: 1, ViewID: 2, Value: tt.want}, nil)
			}

			w := doRequest(newValueRouter(vals, new(MockCellFormatService)), http.MethodPost, "/values", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			vals.AssertExpectations(t)
		})
	}
}

func TestValueHandler_GetValue(t *testing.T) {
	setupTest(t)

	vals := new(MockValueService)
	vals.On("GetCell", mock.Anything, uint(1), "city", uint(2)).Return(&model.Value{Value: strPtr("Boston")}, nil)
	vals.On("GetCell", mock.Anything, uint(1), "state", uint(2)).Return(nil, nil)
	vals.On("GetCell", mock.Anything, uint(9), "city", uint(2)).Return(nil, fmt.Errorf("%w: connection reset", service.ErrStoreUnavailable))
	r := newValueRouter(vals, new(MockCellFormatService))

	w := doRequest(r, http.MethodGet, "/values?university_id=1&column_key=city&view_id=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Boston", decodeResponse(t, w).Data.(map[string]interface{})["value"])

	w = doRequest(r, http.MethodGet, "/values?university_id=1&column_key=state&view_id=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeResponse(t, w).Data)

	w = doRequest(r, http.MethodGet, "/values?university_id=9&column_key=city&view_id=2", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(r, http.MethodGet, "/values?column_key=city", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	vals.AssertExpectations(t)
}

func TestCellFormatHandler_SetCellFormat(t *testing.T) {
	setupTest(t)

	formats := new(MockCellFormatService)
	formats.On("Set", mock.Anything, mock.MatchedBy(func(in service.SetFormatInput) bool {
		p := in.Patch
		return in.UniversityID == 1 && in.ColumnKey == "city" && in.ViewID == 2 &&
			p.BackgroundColor.Set && *p.BackgroundColor.Value == "#ff0" &&
			p.Bold.Set && !*p.Bold.Value &&
			p.TextColor.Set && p.TextColor.Value == nil &&
			!p.Italic.Set && !p.FontSize.Set
	})).Return(&service.FormatAttributes{BackgroundColor: strPtr("#ff0")}, nil).Once()
	formats.On("Set", mock.Anything, mock.MatchedBy(func(in service.SetFormatInput) bool {
		return in.ColumnKey == "state"
	})).Return(nil, nil).Once()
	r := newValueRouter(new(MockValueService), formats)

	w := doRequest(r, http.MethodPost, "/cell-formats",
		`{"university_id":1,"column_key":"city","view_id":2,"background_color":"#ff0","bold":false,"text_color":null}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "#ff0", decodeResponse(t, w).Data.(map[string]interface{})["backgroundColor"])

	// nothing visible left
	w = doRequest(r, http.MethodPost, "/cell-formats", `{"university_id":1,"column_key":"state","view_id":2,"background_color":null}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeResponse(t, w).Data)

	w = doRequest(r, http.MethodPost, "/cell-formats", `{"column_key":"city"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	formats.AssertExpectations(t)
}

func TestCellFormatHandler_GetAndClear(t *testing.T) {
	setupTest(t)

	formats := new(MockCellFormatService)
	formats.On("GetForView", mock.Anything, uint(2)).Return(map[string]service.FormatAttributes{
		service.FormatKey(1, "city"): {TextAlign: strPtr("center")},
	}, nil)
	formats.On("Clear", mock.Anything, uint(1), "city", uint(2)).Return(nil)
	r := newValueRouter(new(MockValueService), formats)

	w := doRequest(r, http.MethodGet, "/cell-formats/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "center", data["1_city"].(map[string]interface{})["textAlign"])

	w = doRequest(r, http.MethodDelete, "/cell-formats?university_id=1&column_key=city&view_id=2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	formats.AssertExpectations(t)
}
