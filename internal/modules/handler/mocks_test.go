package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unidash/unidash/internal/infra/llm"
	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())
	require.NoError(t, RegisterValidators())
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) serializer.Response {
	t.Helper()
	var resp serializer.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type MockViewService struct {
	mock.Mock
}

func (m *MockViewService) List(ctx context.Context) ([]model.View, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.View), args.Error(1)
}

func (m *MockViewService) Get(ctx context.Context, id uint) (*model.View, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.View), args.Error(1)
}

func (m *MockViewService) Create(ctx context.Context, in service.CreateViewInput) (*model.View, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.View), args.Error(1)
}

func (m *MockViewService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockViewDataService struct {
	mock.Mock
}

func (m *MockViewDataService) Get(ctx context.Context, viewID uint, in service.GetViewDataInput) (*service.ViewData, error) {
	args := m.Called(ctx, viewID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ViewData), args.Error(1)
}

type MockColumnService struct {
	mock.Mock
}

func (m *MockColumnService) List(ctx context.Context, viewID uint) ([]model.Column, error) {
	args := m.Called(ctx, viewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Column), args.Error(1)
}

func (m *MockColumnService) Create(ctx context.Context, viewID uint, in service.CreateColumnInput) (*model.Column, error) {
	args := m.Called(ctx, viewID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockColumnService) Update(ctx context.Context, id uint, in service.UpdateColumnInput) (*model.Column, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockColumnService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockValueService struct {
	mock.Mock
}

func (m *MockValueService) GetCell(ctx context.Context, universityID uint, columnKey string, viewID uint) (*model.Value, error) {
	args := m.Called(ctx, universityID, columnKey, viewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Value), args.Error(1)
}

func (m *MockValueService) ListForView(ctx context.Context, viewID uint) ([]model.Value, error) {
	args := m.Called(ctx, viewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Value), args.Error(1)
}

func (m *MockValueService) Upsert(ctx context.Context, in service.UpsertCellInput) (*model.Value, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Value), args.Error(1)
}

type MockCellFormatService struct {
	mock.Mock
}

func (m *MockCellFormatService) GetForView(ctx context.Context, viewID uint) (map[string]service.FormatAttributes, error) {
	args := m.Called(ctx, viewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]service.FormatAttributes), args.Error(1)
}

func (m *MockCellFormatService) Set(ctx context.Context, in service.SetFormatInput) (*service.FormatAttributes, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FormatAttributes), args.Error(1)
}

func (m *MockCellFormatService) Clear(ctx context.Context, universityID uint, columnKey string, viewID uint) error {
	args := m.Called(ctx, universityID, columnKey, viewID)
	return args.Error(0)
}

type MockAIRefreshService struct {
	mock.Mock
}

func (m *MockAIRefreshService) Refresh(ctx context.Context, viewID uint, in service.RefreshInput) (*service.RefreshOutput, error) {
	args := m.Called(ctx, viewID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RefreshOutput), args.Error(1)
}

func (m *MockAIRefreshService) Generate(ctx context.Context, req llm.Request) ([]llm.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]llm.Result), args.Error(1)
}

type MockPlannerService struct {
	mock.Mock
}

func (m *MockPlannerService) ListApplications(ctx context.Context) ([]model.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockPlannerService) CreateApplication(ctx context.Context, in service.ApplicationInput) (*model.Application, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockPlannerService) UpdateApplication(ctx context.Context, id string, in service.ApplicationInput) (*model.Application, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockPlannerService) DeleteApplication(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlannerService) ListTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockPlannerService) CreateTask(ctx context.Context, in service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockPlannerService) UpdateTask(ctx context.Context, id string, in service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockPlannerService) DeleteTask(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlannerService) ListGrades(ctx context.Context) ([]model.Grade, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Grade), args.Error(1)
}

func (m *MockPlannerService) CreateGrade(ctx context.Context, in service.GradeInput) (*model.Grade, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Grade), args.Error(1)
}

func (m *MockPlannerService) UpdateGrade(ctx context.Context, id string, in service.GradeInput) (*model.Grade, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Grade), args.Error(1)
}

func (m *MockPlannerService) DeleteGrade(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
