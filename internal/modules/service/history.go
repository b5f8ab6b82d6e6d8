package service

import (
	"context"
	"math"
	"strings"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
)

// HistoryService is the append-only change ledger. Only provenance-carrying
// writes (AI refresh) record entries.
type HistoryService interface {
	RecordChange(ctx context.Context, in RecordChangeInput) (*model.ValueHistory, error)
	ListForUniversity(ctx context.Context, universityID uint) ([]model.ValueHistory, error)
}

type historyService struct {
	r repo.HistoryRepo
}

func NewHistoryService(r repo.HistoryRepo) HistoryService {
	return &historyService{r: r}
}

type RecordChangeInput struct {
	UniversityID uint
	ColumnKey    string
	ViewID       uint
	OldValue     *string
	NewValue     *string
	Source       *string
	Confidence   *float64
	Notes        *string
}

func (s *historyService) RecordChange(ctx context.Context, in RecordChangeInput) (*model.ValueHistory, error) {
	if strings.TrimSpace(in.ColumnKey) == "" {
		return nil, validationErr("column_key is required")
	}
	h := &model.ValueHistory{
		UniversityID: in.UniversityID,
		ColumnKey:    in.ColumnKey,
		ViewID:       in.ViewID,
		OldValue:     in.OldValue,
		NewValue:     in.NewValue,
		Source:       in.Source,
		Notes:        in.Notes,
	}
	if in.Confidence != nil {
		c := clamp01(*in.Confidence)
		h.Confidence = &c
	}
	if err := s.r.Create(ctx, h); err != nil {
		return nil, translateErr(err, "history", in.ColumnKey)
	}
	return h, nil
}

func (s *historyService) ListForUniversity(ctx context.Context, universityID uint) ([]model.ValueHistory, error) {
	items, err := s.r.ListByUniversity(ctx, universityID)
	return items, translateErr(err, "university", universityID)
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
