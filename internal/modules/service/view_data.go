package service

import (
	"context"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"github.com/unidash/unidash/internal/pkg/cellvalue"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ViewDataService interface {
	Get(ctx context.Context, viewID uint, in GetViewDataInput) (*ViewData, error)
}

type GetViewDataInput struct {
	// Display renders cells through their column type (Yes/No, ISO dates).
	Display bool
}

// ViewData is the dense, row-shaped projection of one view. Every row holds
// id, the university fields and every visible column key.
type ViewData struct {
	Universities []model.University `json:"universities"`
	Columns      []model.Column     `json:"columns"`
	Data         []map[string]any   `json:"data"`
}

type viewDataService struct {
	views repo.ViewRepo
	unis  repo.UniversityRepo
	cols  repo.ColumnRepo
	vals  repo.ValueRepo
	cache ViewCache
	log   *zap.Logger
}

func NewViewDataService(views repo.ViewRepo, unis repo.UniversityRepo, cols repo.ColumnRepo, vals repo.ValueRepo, cache ViewCache, log *zap.Logger) ViewDataService {
	return &viewDataService{views: views, unis: unis, cols: cols, vals: vals, cache: cache, log: log}
}

func (s *viewDataService) Get(ctx context.Context, viewID uint, in GetViewDataInput) (*ViewData, error) {
	if _, err := s.views.Get(ctx, viewID); err != nil {
		return nil, translateErr(err, "view", viewID)
	}

	variant := "raw"
	if in.Display {
		variant = "display"
	}
	gen, cacheable := s.generation(ctx, viewID)
	if cacheable {
		if cached, ok := s.fromCache(ctx, viewID, gen, variant); ok {
			return cached, nil
		}
	}

	var (
		unis []model.University
		cols []model.Column
		vals []model.Value
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		unis, err = s.unis.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cols, err = s.cols.ListByView(gctx, viewID, true)
		return err
	})
	g.Go(func() error {
		var err error
		vals, err = s.vals.ListByView(gctx, viewID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, translateErr(err, "view", viewID)
	}

	out := Compose(unis, cols, vals, in.Display)
	if cacheable {
		s.toCache(ctx, viewID, gen, variant, out)
	}
	return out, nil
}

// Compose joins universities, visible columns and sparse cells into dense
// rows. Cells are looked up through an index built once from vals.
func Compose(unis []model.University, cols []model.Column, vals []model.Value, display bool) *ViewData {
	index := make(map[string]*string, len(vals))
	for _, v := range vals {
		index[cellKey(v.UniversityID, v.ColumnKey)] = v.Value
	}

	rows := make([]map[string]any, 0, len(unis))
	for _, u := range unis {
		row := u.Fields()
		for _, c := range cols {
			raw := index[cellKey(u.ID, c.Key)]
			if display {
				row[c.Key] = cellvalue.Display(cellvalue.ColumnType(c.Type), c.SelectOptions, raw)
				continue
			}
			if raw == nil {
				row[c.Key] = nil
			} else {
				row[c.Key] = *raw
			}
		}
		rows = append(rows, row)
	}

	if unis == nil {
		unis = []model.University{}
	}
	if cols == nil {
		cols = []model.Column{}
	}
	return &ViewData{Universities: unis, Columns: cols, Data: rows}
}

func cellKey(universityID uint, columnKey string) string {
	return strconv.FormatUint(uint64(universityID), 10) + "|" + columnKey
}

// generation must be taken before the store is read.
func (s *viewDataService) generation(ctx context.Context, viewID uint) (string, bool) {
	gen, err := s.cache.Generation(ctx, viewID)
	if err != nil {
		s.log.Warn("read view cache generation", zap.Uint("view_id", viewID), zap.Error(err))
		return "", false
	}
	return gen, true
}

func (s *viewDataService) fromCache(ctx context.Context, viewID uint, gen, variant string) (*ViewData, bool) {
	b, ok, err := s.cache.GetView(ctx, viewID, gen, variant)
	if err != nil {
		s.log.Warn("read view cache", zap.Uint("view_id", viewID), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var out ViewData
	if err := sonic.Unmarshal(b, &out); err != nil {
		s.log.Warn("decode cached view", zap.Uint("view_id", viewID), zap.Error(err))
		return nil, false
	}
	return &out, true
}

func (s *viewDataService) toCache(ctx context.Context, viewID uint, gen, variant string, data *ViewData) {
	b, err := sonic.Marshal(data)
	if err != nil {
		s.log.Warn("encode view for cache", zap.Uint("view_id", viewID), zap.Error(err))
		return
	}
	if err := s.cache.SetView(ctx, viewID, gen, variant, b); err != nil {
		s.log.Warn("write view cache", zap.Uint("view_id", viewID), zap.Error(err))
	}
}
