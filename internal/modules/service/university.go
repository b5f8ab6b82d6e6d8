package service

import (
	"context"
	"strings"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"go.uber.org/zap"
)

type UniversityService interface {
	List(ctx context.Context) ([]model.University, error)
	Get(ctx context.Context, id uint) (*model.University, error)
	Create(ctx context.Context, in UniversityInput) (*model.University, error)
	Update(ctx context.Context, id uint, in UniversityInput) (*model.University, error)
	Delete(ctx context.Context, id uint) error
}

type universityService struct {
	r     repo.UniversityRepo
	cache ViewCache
	log   *zap.Logger
}

func NewUniversityService(r repo.UniversityRepo, cache ViewCache, log *zap.Logger) UniversityService {
	return &universityService{r: r, cache: cache, log: log}
}

type UniversityInput struct {
	Name    string  `json:"name"`
	Country *string `json:"country"`
	State   *string `json:"state"`
	City    *string `json:"city"`
	Type    *string `json:"type"`
	Website *string `json:"website"`
	Notes   *string `json:"notes"`
}

func (in UniversityInput) toModel() (model.University, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.University{}, validationErr("university name is required")
	}
	return model.University{
		Name:    name,
		Country: in.Country,
		State:   in.State,
		City:    in.City,
		Type:    in.Type,
		Website: in.Website,
		Notes:   in.Notes,
	}, nil
}

func (s *universityService) List(ctx context.Context) ([]model.University, error) {
	unis, err := s.r.List(ctx)
	return unis, translateErr(err, "university", "")
}

func (s *universityService) Get(ctx context.Context, id uint) (*model.University, error) {
	u, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, translateErr(err, "university", id)
	}
	return u, nil
}

func (s *universityService) Create(ctx context.Context, in UniversityInput) (*model.University, error) {
	u, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, &u); err != nil {
		return nil, translateErr(err, "university", u.Name)
	}
	invalidateViews(ctx, s.cache, s.log)
	return &u, nil
}

// Update replaces every descriptive field of the university.
func (s *universityService) Update(ctx context.Context, id uint, in UniversityInput) (*model.University, error) {
	u, err := in.toModel()
	if err != nil {
		return nil, err
	}
	u.ID = id
	if err := s.r.Update(ctx, &u); err != nil {
		return nil, translateErr(err, "university", id)
	}
	invalidateViews(ctx, s.cache, s.log)
	return s.Get(ctx, id)
}

// Delete removes the university and its cells in every view. Unknown ids are
// a no-op.
func (s *universityService) Delete(ctx context.Context, id uint) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return translateErr(err, "university", id)
	}
	invalidateViews(ctx, s.cache, s.log)
	return nil
}
