package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unidash/unidash/internal/infra/llm"
	"github.com/unidash/unidash/internal/testutil"
	"go.uber.org/zap"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GenerateValues(ctx context.Context, req llm.Request) ([]llm.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]llm.Result), args.Error(1)
}

func forUniversity(name string) interface{} {
	return mock.MatchedBy(func(r llm.Request) bool { return r.University.Name == name })
}

func (s *stack) aiRefresh(p llm.Provider) AIRefreshService {
	return NewAIRefreshService(p, s.views, s.unis, s.cols, s.vals, s.histSvc, NopViewCache(), zap.NewNop())
}

func TestAIRefresh_WritesValuesAndHistory(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	v := s.mustView(t, "V")
	s.mustColumn(t, v.ID, "tuition", "number")
	s.mustColumn(t, v.ID, "dorm", "boolean")
	s.mustColumn(t, v.ID, "deadline", "date")
	u := s.mustUniversity(t, "TUM")

	_, err := s.valSvc.Upsert(ctx, UpsertCellInput{UniversityID: u.ID, ColumnKey: "tuition", ViewID: v.ID, Value: testutil.Ptr("150")})
	require.NoError(t, err)

	p := new(MockProvider)
	p.On("GenerateValues", mock.Anything, mock.MatchedBy(func(r llm.Request) bool {
		return r.University.Name == "TUM" && len(r.Columns) == 2 &&
			r.Columns[0].Key == "tuition" && r.Columns[1].Key == "dorm"
	})).Return([]llm.Result{
		{ColumnKey: "tuition", Value: float64(0), Source: "tum.de", Confidence: 0.9},
		{ColumnKey: "dorm", Value: true, Confidence: 2, Notes: testutil.Ptr("limited")},
		{ColumnKey: "deadline", Value: "2025-05-31", Confidence: 1},
	}, nil)

	out, err := s.aiRefresh(p).Refresh(ctx, v.ID, RefreshInput{ColumnKeys: []string{"tuition", "dorm"}})
	require.NoError(t, err)
	p.AssertExpectations(t)

	assert.Equal(t, 1, out.Universities)
	require.Len(t, out.Updated, 2)
	assert.Equal(t, "150", *out.Updated[0].OldValue)
	assert.Equal(t, "0", *out.Updated[0].NewValue)
	assert.Nil(t, out.Updated[1].OldValue)
	assert.Equal(t, "true", *out.Updated[1].NewValue)
	assert.Equal(t, 1.0, out.Updated[1].Confidence)

	// unrequested keys are ignored even when the model returns them
	deadline, err := s.valSvc.GetCell(ctx, u.ID, "deadline", v.ID)
	require.NoError(t, err)
	assert.Nil(t, deadline)

	hist, err := s.histSvc.ListForUniversity(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	byKey := map[string]int{}
	for i, h := range hist {
		byKey[h.ColumnKey] = i
	}
	tuition := hist[byKey["tuition"]]
	assert.Equal(t, "150", *tuition.OldValue)
	assert.Equal(t, "0", *tuition.NewValue)
	assert.Equal(t, "tum.de", *tuition.Source)
	assert.InDelta(t, 0.9, *tuition.Confidence, 1e-9)
	dorm := hist[byKey["dorm"]]
	assert.Nil(t, dorm.Source)
	assert.Equal(t, "limited", *dorm.Notes)
}

func TestAIRefresh_NullValueIsStored(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	v := s.mustView(t, "V")
	s.mustColumn(t, v.ID, "tuition", "number")
	u := s.mustUniversity(t, "TUM")
	_, err := s.valSvc.Upsert(ctx, UpsertCellInput{UniversityID: u.ID, ColumnKey: "tuition", ViewID: v.ID, Value: testutil.Ptr("150")})
	require.NoError(t, err)

	p := new(MockProvider)
	p.On("GenerateValues", mock.Anything, mock.Anything).
		Return([]llm.Result{{ColumnKey: "tuition", Value: nil, Notes: testutil.Ptr("not published")}}, nil)

	_, err = s.aiRefresh(p).Refresh(ctx, v.ID, RefreshInput{})
	require.NoError(t, err)

	cell, err := s.valSvc.GetCell(ctx, u.ID, "tuition", v.ID)
	require.NoError(t, err)
	require.NotNil(t, cell)
	assert.Nil(t, cell.Value)
}

func TestAIRefresh_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	v := s.mustView(t, "V")
	s.mustColumn(t, v.ID, "tuition", "number")
	first := s.mustUniversity(t, "First")
	second := s.mustUniversity(t, "Second")
	third := s.mustUniversity(t, "Third")

	p := new(MockProvider)
	p.On("GenerateValues", mock.Anything, forUniversity("First")).
		Return([]llm.Result{{ColumnKey: "tuition", Value: "100"}}, nil).Once()
	p.On("GenerateValues", mock.Anything, forUniversity("Second")).
		Return(nil, errors.New("rate limited")).Once()

	out, err := s.aiRefresh(p).Refresh(ctx, v.ID, RefreshInput{UniversityIDs: []uint{first.ID, second.ID, third.ID}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Universities)
	require.Len(t, out.Updated, 1)
	assert.Equal(t, first.ID, out.Updated[0].UniversityID)

	p.AssertExpectations(t)
	p.AssertNotCalled(t, "GenerateValues", mock.Anything, forUniversity("Third"))

	cell, err := s.valSvc.GetCell(ctx, first.ID, "tuition", v.ID)
	require.NoError(t, err)
	require.NotNil(t, cell)
	assert.Equal(t, "100", *cell.Value)
}

func TestAIRefresh_InputErrors(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	v := s.mustView(t, "V")
	s.mustColumn(t, v.ID, "tuition", "number")
	s.mustUniversity(t, "TUM")
	svc := s.aiRefresh(new(MockProvider))

	tests := []struct {
		name    string
		viewID  uint
		in      RefreshInput
		wantErr error
	}{
		{name: "unknown view", viewID: 999, wantErr: ErrNotFound},
		{name: "unknown column", viewID: v.ID, in: RefreshInput{ColumnKeys: []string{"nope"}}, wantErr: ErrValidation},
		{name: "unknown university", viewID: v.ID, in: RefreshInput{UniversityIDs: []uint{999}}, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Refresh(ctx, tt.viewID, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	empty := s.mustView(t, "Empty")
	_, err := svc.Refresh(ctx, empty.ID, RefreshInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAIRefresh_Generate(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	req := llm.Request{University: llm.University{Name: "TUM"}, Columns: []llm.Column{{Key: "tuition"}}}
	p := new(MockProvider)
	p.On("GenerateValues", mock.Anything, req).Return([]llm.Result{{ColumnKey: "tuition", Value: "0"}}, nil).Once()
	svc := s.aiRefresh(p)

	res, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Len(t, res, 1)

	_, err = svc.Generate(ctx, llm.Request{University: llm.University{Name: "TUM"}})
	assert.ErrorIs(t, err, ErrValidation)
	p.AssertExpectations(t)
}
