package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/unidash/unidash/internal/infra/llm"
	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"github.com/unidash/unidash/internal/pkg/cellvalue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AIRefreshService interface {
	// Refresh asks the provider for new values, one call per university in
	// order. On the first failing university it stops and returns what was
	// written so far together with the error.
	Refresh(ctx context.Context, viewID uint, in RefreshInput) (*RefreshOutput, error)
	// Generate passes a single request straight to the provider. It backs
	// the endpoint other instances reach in proxy mode.
	Generate(ctx context.Context, req llm.Request) ([]llm.Result, error)
}

type aiRefreshService struct {
	provider llm.Provider
	views    repo.ViewRepo
	unis     repo.UniversityRepo
	cols     repo.ColumnRepo
	vals     repo.ValueRepo
	history  HistoryService
	cache    ViewCache
	log      *zap.Logger
}

func NewAIRefreshService(
	provider llm.Provider,
	views repo.ViewRepo,
	unis repo.UniversityRepo,
	cols repo.ColumnRepo,
	vals repo.ValueRepo,
	history HistoryService,
	cache ViewCache,
	log *zap.Logger,
) AIRefreshService {
	return &aiRefreshService{
		provider: provider,
		views:    views,
		unis:     unis,
		cols:     cols,
		vals:     vals,
		history:  history,
		cache:    cache,
		log:      log,
	}
}

type RefreshInput struct {
	// UniversityIDs defaults to every university.
	UniversityIDs []uint `json:"university_ids"`
	// ColumnKeys defaults to every visible column of the view.
	ColumnKeys []string `json:"column_keys"`
}

type RefreshedCell struct {
	UniversityID uint    `json:"university_id"`
	ColumnKey    string  `json:"column_key"`
	OldValue     *string `json:"old_value"`
	NewValue     *string `json:"new_value"`
	Source       string  `json:"source"`
	Confidence   float64 `json:"confidence"`
	Notes        *string `json:"notes"`
}

type RefreshOutput struct {
	ViewID       uint            `json:"view_id"`
	Universities int             `json:"universities"`
	Updated      []RefreshedCell `json:"updated"`
}

func (s *aiRefreshService) Refresh(ctx context.Context, viewID uint, in RefreshInput) (*RefreshOutput, error) {
	if _, err := s.views.Get(ctx, viewID); err != nil {
		return nil, translateErr(err, "view", viewID)
	}

	cols, err := s.selectColumns(ctx, viewID, in.ColumnKeys)
	if err != nil {
		return nil, err
	}
	unis, err := s.selectUniversities(ctx, in.UniversityIDs)
	if err != nil {
		return nil, err
	}

	out := &RefreshOutput{ViewID: viewID, Updated: []RefreshedCell{}}
	defer func() {
		if len(out.Updated) > 0 {
			invalidateView(ctx, s.cache, s.log, viewID)
		}
	}()

	byKey := make(map[string]model.Column, len(cols))
	descs := make([]llm.Column, 0, len(cols))
	for _, c := range cols {
		byKey[c.Key] = c
		descs = append(descs, llm.Column{
			Key:            c.Key,
			Label:          c.Label,
			Type:           c.Type,
			Section:        c.Section,
			AIInstructions: c.AIInstructions,
		})
	}

	for _, u := range unis {
		req := llm.Request{University: universityDescriptor(u), Columns: descs}
		results, err := s.provider.GenerateValues(ctx, req)
		if err != nil {
			s.log.Warn("ai refresh stopped", zap.Uint("view_id", viewID), zap.Uint("university_id", u.ID), zap.Error(err))
			return out, fmt.Errorf("%w: university %d: %v", ErrUpstream, u.ID, err)
		}

		for _, r := range results {
			col, ok := byKey[r.ColumnKey]
			if !ok {
				continue
			}
			cell, err := s.apply(ctx, viewID, u.ID, col, r)
			if err != nil {
				return out, err
			}
			if cell != nil {
				out.Updated = append(out.Updated, *cell)
			}
		}
		out.Universities++
	}

	s.log.Info("ai refresh done", zap.Uint("view_id", viewID), zap.Int("universities", out.Universities), zap.Int("cells", len(out.Updated)))
	return out, nil
}

// apply stores one result and records it in the ledger. A value that cannot
// be rendered as text is skipped.
func (s *aiRefreshService) apply(ctx context.Context, viewID, universityID uint, col model.Column, r llm.Result) (*RefreshedCell, error) {
	text, err := cellvalue.FromAny(r.Value)
	if err != nil {
		s.log.Warn("skip ai value", zap.String("column_key", col.Key), zap.Error(err))
		return nil, nil
	}
	text = cellvalue.Normalize(cellvalue.ColumnType(col.Type), text)

	var old *string
	prev, err := s.vals.Get(ctx, universityID, col.Key, viewID)
	switch {
	case err == nil:
		old = prev.Value
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, translateErr(err, "value", col.Key)
	}

	if _, err := s.vals.Upsert(ctx, universityID, col.Key, viewID, text); err != nil {
		return nil, translateErr(err, "value", col.Key)
	}

	confidence := llm.ClampConfidence(r.Confidence)
	var source *string
	if r.Source != "" {
		source = &r.Source
	}
	if _, err := s.history.RecordChange(ctx, RecordChangeInput{
		UniversityID: universityID,
		ColumnKey:    col.Key,
		ViewID:       viewID,
		OldValue:     old,
		NewValue:     text,
		Source:       source,
		Confidence:   &confidence,
		Notes:        r.Notes,
	}); err != nil {
		return nil, err
	}

	return &RefreshedCell{
		UniversityID: universityID,
		ColumnKey:    col.Key,
		OldValue:     old,
		NewValue:     text,
		Source:       r.Source,
		Confidence:   confidence,
		Notes:        r.Notes,
	}, nil
}

func (s *aiRefreshService) selectColumns(ctx context.Context, viewID uint, keys []string) ([]model.Column, error) {
	cols, err := s.cols.ListByView(ctx, viewID, true)
	if err != nil {
		return nil, translateErr(err, "view", viewID)
	}
	if len(keys) > 0 {
		want := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			want[strings.TrimSpace(k)] = struct{}{}
		}
		picked := cols[:0]
		for _, c := range cols {
			if _, ok := want[c.Key]; ok {
				picked = append(picked, c)
				delete(want, c.Key)
			}
		}
		if len(want) > 0 {
			missing := make([]string, 0, len(want))
			for k := range want {
				missing = append(missing, k)
			}
			return nil, validationErr("unknown or hidden column keys: %s", strings.Join(missing, ", "))
		}
		cols = picked
	}
	if len(cols) == 0 {
		return nil, validationErr("no columns to refresh")
	}
	return cols, nil
}

// selectUniversities keeps the caller's order.
func (s *aiRefreshService) selectUniversities(ctx context.Context, ids []uint) ([]model.University, error) {
	if len(ids) == 0 {
		unis, err := s.unis.List(ctx)
		if err != nil {
			return nil, translateErr(err, "university", "")
		}
		if len(unis) == 0 {
			return nil, validationErr("no universities to refresh")
		}
		return unis, nil
	}

	found, err := s.unis.ListByIDs(ctx, ids)
	if err != nil {
		return nil, translateErr(err, "university", ids)
	}
	byID := make(map[uint]model.University, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	unis := make([]model.University, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			return nil, notFoundErr("university", id)
		}
		unis = append(unis, u)
	}
	return unis, nil
}

func universityDescriptor(u model.University) llm.University {
	return llm.University{
		Name:    u.Name,
		Country: u.Country,
		State:   u.State,
		City:    u.City,
		Type:    u.Type,
		Website: u.Website,
	}
}

func (s *aiRefreshService) Generate(ctx context.Context, req llm.Request) ([]llm.Result, error) {
	if _, err := llm.BuildUserPrompt(req); err != nil {
		return nil, validationErr("%v", err)
	}
	results, err := s.provider.GenerateValues(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return results, nil
}
