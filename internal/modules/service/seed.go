package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seeddata/general.yaml
var generalSeed []byte

type seedColumn struct {
	Key           string   `yaml:"key"`
	Label         string   `yaml:"label"`
	Type          string   `yaml:"type"`
	Section       string   `yaml:"section"`
	SelectOptions []string `yaml:"select_options"`
	Pinned        bool     `yaml:"pinned"`
	OrderIndex    int      `yaml:"order_index"`
}

type seedUniversity struct {
	Name    string  `yaml:"name"`
	Country *string `yaml:"country"`
	State   *string `yaml:"state"`
	City    *string `yaml:"city"`
	Type    *string `yaml:"type"`
	Website *string `yaml:"website"`
}

type SeedData struct {
	View         string           `yaml:"view"`
	Columns      []seedColumn     `yaml:"columns"`
	Universities []seedUniversity `yaml:"universities"`
}

// LoadSeedData parses the built-in dataset.
func LoadSeedData() (*SeedData, error) {
	var d SeedData
	if err := yaml.Unmarshal(generalSeed, &d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &d, nil
}

type SeedResult struct {
	ViewID              uint `json:"view_id"`
	ViewCreated         bool `json:"view_created"`
	UniversitiesCreated int  `json:"universities_created"`
	ColumnsCreated      int  `json:"columns_created"`
	ValuesWritten       int  `json:"values_written"`
}

type SeedService interface {
	// Seed makes sure the General view, its columns, the built-in
	// universities and their basic cells exist. Running it again changes
	// nothing that is already there.
	Seed(ctx context.Context) (*SeedResult, error)
}

type seedService struct {
	data  *SeedData
	views repo.ViewRepo
	unis  repo.UniversityRepo
	cols  repo.ColumnRepo
	vals  repo.ValueRepo
	cache ViewCache
	log   *zap.Logger
}

func NewSeedService(data *SeedData, views repo.ViewRepo, unis repo.UniversityRepo, cols repo.ColumnRepo, vals repo.ValueRepo, cache ViewCache, log *zap.Logger) SeedService {
	return &seedService{
		data:  data,
		views: views,
		unis:  unis,
		cols:  cols,
		vals:  vals,
		cache: cache,
		log:   log,
	}
}

func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}

	view, err := s.views.GetByName(ctx, s.data.View)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		view = &model.View{Name: s.data.View}
		if err := s.views.Create(ctx, view); err != nil {
			return nil, translateErr(err, "view", s.data.View)
		}
		res.ViewCreated = true
	case err != nil:
		return nil, translateErr(err, "view", s.data.View)
	}
	res.ViewID = view.ID

	unis := make([]model.University, 0, len(s.data.Universities))
	for _, su := range s.data.Universities {
		u, created, err := s.ensureUniversity(ctx, su)
		if err != nil {
			return nil, err
		}
		if created {
			res.UniversitiesCreated++
		}
		unis = append(unis, *u)
	}

	for _, sc := range s.data.Columns {
		created, err := s.ensureColumn(ctx, view.ID, sc)
		if err != nil {
			return nil, err
		}
		if created {
			res.ColumnsCreated++
		}
	}

	for i, u := range unis {
		for key, v := range basicCellValues(u, i+1) {
			if v == nil {
				continue
			}
			written, err := s.fillEmptyCell(ctx, u.ID, key, view.ID, v)
			if err != nil {
				return nil, err
			}
			if written {
				res.ValuesWritten++
			}
		}
	}

	if res.ViewCreated || res.UniversitiesCreated > 0 || res.ColumnsCreated > 0 || res.ValuesWritten > 0 {
		invalidateViews(ctx, s.cache, s.log)
	}
	s.log.Info("seed done",
		zap.Uint("view_id", res.ViewID),
		zap.Bool("view_created", res.ViewCreated),
		zap.Int("universities_created", res.UniversitiesCreated),
		zap.Int("columns_created", res.ColumnsCreated),
		zap.Int("values_written", res.ValuesWritten))
	return res, nil
}

func (s *seedService) ensureUniversity(ctx context.Context, su seedUniversity) (*model.University, bool, error) {
	u, err := s.unis.GetByName(ctx, su.Name)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, translateErr(err, "university", su.Name)
	}
	u = &model.University{
		Name:    su.Name,
		Country: su.Country,
		State:   su.State,
		City:    su.City,
		Type:    su.Type,
		Website: su.Website,
	}
	if err := s.unis.Create(ctx, u); err != nil {
		return nil, false, translateErr(err, "university", su.Name)
	}
	return u, true, nil
}

func (s *seedService) ensureColumn(ctx context.Context, viewID uint, sc seedColumn) (bool, error) {
	_, err := s.cols.GetByKey(ctx, viewID, sc.Key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, translateErr(err, "column", sc.Key)
	}
	c := &model.Column{
		ViewID:     viewID,
		Key:        sc.Key,
		Label:      sc.Label,
		Type:       sc.Type,
		Section:    sc.Section,
		Pinned:     sc.Pinned,
		Visible:    true,
		OrderIndex: sc.OrderIndex,
	}
	if len(sc.SelectOptions) > 0 {
		c.SelectOptions = model.SelectOptions(sc.SelectOptions)
	}
	if err := s.cols.Create(ctx, c); err != nil {
		return false, translateErr(err, "column", sc.Key)
	}
	return true, nil
}

func (s *seedService) fillEmptyCell(ctx context.Context, universityID uint, key string, viewID uint, v *string) (bool, error) {
	cur, err := s.vals.Get(ctx, universityID, key, viewID)
	switch {
	case err == nil && cur.Value != nil:
		return false, nil
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return false, translateErr(err, "value", key)
	}
	if _, err := s.vals.Upsert(ctx, universityID, key, viewID, v); err != nil {
		return false, translateErr(err, "value", key)
	}
	return true, nil
}
