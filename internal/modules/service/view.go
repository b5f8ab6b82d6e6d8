package service

import (
	"context"
	"errors"
	"strings"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ViewService interface {
	List(ctx context.Context) ([]model.View, error)
	Get(ctx context.Context, id uint) (*model.View, error)
	Create(ctx context.Context, in CreateViewInput) (*model.View, error)
	Delete(ctx context.Context, id uint) error
}

type viewService struct {
	views repo.ViewRepo
	cols  repo.ColumnRepo
	vals  repo.ValueRepo
	unis  repo.UniversityRepo
	cache ViewCache
	log   *zap.Logger
}

func NewViewService(views repo.ViewRepo, cols repo.ColumnRepo, vals repo.ValueRepo, unis repo.UniversityRepo, cache ViewCache, log *zap.Logger) ViewService {
	return &viewService{
		views: views,
		cols:  cols,
		vals:  vals,
		unis:  unis,
		cache: cache,
		log:   log,
	}
}

type CreateViewInput struct {
	Name string `json:"name"`
	// CopyFromViewID duplicates the columns and non-null cells of an
	// existing view under the same keys.
	CopyFromViewID *uint `json:"copy_from_view_id,omitempty"`
}

func (s *viewService) List(ctx context.Context) ([]model.View, error) {
	views, err := s.views.List(ctx)
	return views, translateErr(err, "view", "")
}

func (s *viewService) Get(ctx context.Context, id uint) (*model.View, error) {
	v, err := s.views.Get(ctx, id)
	if err != nil {
		return nil, translateErr(err, "view", id)
	}
	return v, nil
}

func (s *viewService) Create(ctx context.Context, in CreateViewInput) (*model.View, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("view name is required")
	}
	if _, err := s.views.GetByName(ctx, name); err == nil {
		return nil, validationErr("view %q already exists", name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translateErr(err, "view", name)
	}

	var (
		cols []model.Column
		vals []model.Value
		err  error
	)
	if in.CopyFromViewID != nil {
		cols, vals, err = s.copyContent(ctx, *in.CopyFromViewID)
	} else {
		cols, vals, err = s.defaultContent(ctx)
	}
	if err != nil {
		return nil, err
	}

	v := &model.View{Name: name}
	if err := s.views.CreateWithContent(ctx, v, cols, vals); err != nil {
		return nil, translateErr(err, "view", name)
	}
	s.log.Info("view created", zap.Uint("view_id", v.ID), zap.String("name", name), zap.Int("columns", len(cols)), zap.Int("cells", len(vals)))
	return v, nil
}

func (s *viewService) copyContent(ctx context.Context, srcID uint) ([]model.Column, []model.Value, error) {
	if _, err := s.views.Get(ctx, srcID); err != nil {
		return nil, nil, translateErr(err, "view", srcID)
	}
	cols, err := s.cols.ListByView(ctx, srcID, false)
	if err != nil {
		return nil, nil, translateErr(err, "view", srcID)
	}
	src, err := s.vals.ListByView(ctx, srcID)
	if err != nil {
		return nil, nil, translateErr(err, "view", srcID)
	}

	keys := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		keys[c.Key] = struct{}{}
	}
	vals := make([]model.Value, 0, len(src))
	for _, v := range src {
		if v.Value == nil {
			continue
		}
		if _, ok := keys[v.ColumnKey]; !ok {
			continue
		}
		vals = append(vals, model.Value{UniversityID: v.UniversityID, ColumnKey: v.ColumnKey, Value: v.Value})
	}
	return cols, vals, nil
}

func (s *viewService) defaultContent(ctx context.Context) ([]model.Column, []model.Value, error) {
	cols := defaultViewColumns()
	unis, err := s.unis.List(ctx)
	if err != nil {
		return nil, nil, translateErr(err, "university", "")
	}

	var vals []model.Value
	for i, u := range unis {
		basics := basicCellValues(u, i+1)
		for _, c := range cols {
			if v := basics[c.Key]; v != nil {
				vals = append(vals, model.Value{UniversityID: u.ID, ColumnKey: c.Key, Value: v})
			}
		}
	}
	return cols, vals, nil
}

// Delete is a no-op for unknown ids.
func (s *viewService) Delete(ctx context.Context, id uint) error {
	if err := s.views.Delete(ctx, id); err != nil {
		return translateErr(err, "view", id)
	}
	invalidateView(ctx, s.cache, s.log, id)
	return nil
}
