package service

import (
	"context"
	"errors"
	"strings"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"github.com/unidash/unidash/internal/pkg/cellvalue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSection = "Basics"

type ColumnService interface {
	List(ctx context.Context, viewID uint) ([]model.Column, error)
	Create(ctx context.Context, viewID uint, in CreateColumnInput) (*model.Column, error)
	Update(ctx context.Context, id uint, in UpdateColumnInput) (*model.Column, error)
	Delete(ctx context.Context, id uint) error
}

type columnService struct {
	cols  repo.ColumnRepo
	views repo.ViewRepo
	cache ViewCache
	log   *zap.Logger
}

func NewColumnService(cols repo.ColumnRepo, views repo.ViewRepo, cache ViewCache, log *zap.Logger) ColumnService {
	return &columnService{cols: cols, views: views, cache: cache, log: log}
}

type CreateColumnInput struct {
	Key            string   `json:"key"`
	Label          string   `json:"label"`
	Type           string   `json:"type"`
	Section        *string  `json:"section"`
	SelectOptions  []string `json:"select_options"`
	AIInstructions *string  `json:"ai_instructions"`
	Pinned         *bool    `json:"pinned"`
	Visible        *bool    `json:"visible"`
	OrderIndex     *int     `json:"order_index"`
}

// UpdateColumnInput is a patch: nil fields are left unchanged. Key and view
// are immutable and therefore absent. AIInstructions can also be cleared
// with an explicit null.
type UpdateColumnInput struct {
	Label          *string          `json:"label"`
	Type           *string          `json:"type"`
	Section        *string          `json:"section"`
	SelectOptions  *[]string        `json:"select_options"`
	AIInstructions Optional[string] `json:"ai_instructions"`
	Pinned         *bool            `json:"pinned"`
	Visible        *bool            `json:"visible"`
	OrderIndex     *int             `json:"order_index"`
}

func (s *columnService) List(ctx context.Context, viewID uint) ([]model.Column, error) {
	if _, err := s.views.Get(ctx, viewID); err != nil {
		return nil, translateErr(err, "view", viewID)
	}
	cols, err := s.cols.ListByView(ctx, viewID, false)
	return cols, translateErr(err, "view", viewID)
}

func (s *columnService) Create(ctx context.Context, viewID uint, in CreateColumnInput) (*model.Column, error) {
	key := strings.TrimSpace(in.Key)
	if key == "" {
		return nil, validationErr("column key is required")
	}
	typ := cellvalue.Text
	if in.Type != "" {
		t, err := cellvalue.ParseColumnType(in.Type)
		if err != nil {
			return nil, validationErr("%v", err)
		}
		typ = t
	}

	if _, err := s.views.Get(ctx, viewID); err != nil {
		return nil, translateErr(err, "view", viewID)
	}
	if _, err := s.cols.GetByKey(ctx, viewID, key); err == nil {
		return nil, validationErr("column %q already exists in view %d", key, viewID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translateErr(err, "column", key)
	}

	c := &model.Column{
		ViewID:         viewID,
		Key:            key,
		Label:          strings.TrimSpace(in.Label),
		Type:           string(typ),
		Section:        defaultSection,
		AIInstructions: in.AIInstructions,
		Visible:        true,
	}
	if c.Label == "" {
		c.Label = key
	}
	if in.Section != nil && strings.TrimSpace(*in.Section) != "" {
		c.Section = strings.TrimSpace(*in.Section)
	}
	if typ == cellvalue.Select {
		c.SelectOptions = cleanOptions(in.SelectOptions)
	}
	if in.Pinned != nil {
		c.Pinned = *in.Pinned
	}
	if in.Visible != nil {
		c.Visible = *in.Visible
	}
	if in.OrderIndex != nil {
		c.OrderIndex = *in.OrderIndex
	}

	if err := s.cols.Create(ctx, c); err != nil {
		return nil, translateErr(err, "column", key)
	}
	invalidateView(ctx, s.cache, s.log, viewID)
	return c, nil
}

func (s *columnService) Update(ctx context.Context, id uint, in UpdateColumnInput) (*model.Column, error) {
	current, err := s.cols.Get(ctx, id)
	if err != nil {
		return nil, translateErr(err, "column", id)
	}

	updates := map[string]interface{}{}
	typ := cellvalue.ColumnType(current.Type)
	if in.Type != nil {
		t, err := cellvalue.ParseColumnType(*in.Type)
		if err != nil {
			return nil, validationErr("%v", err)
		}
		typ = t
		updates["type"] = string(t)
	}
	if in.Label != nil {
		label := strings.TrimSpace(*in.Label)
		if label == "" {
			return nil, validationErr("column label must not be empty")
		}
		updates["label"] = label
	}
	if in.Section != nil {
		section := strings.TrimSpace(*in.Section)
		if section == "" {
			section = defaultSection
		}
		updates["section"] = section
	}
	switch {
	case typ != cellvalue.Select:
		if current.SelectOptions != nil {
			updates["select_options"] = model.SelectOptions(nil)
		}
	case in.SelectOptions != nil:
		updates["select_options"] = cleanOptions(*in.SelectOptions)
	}
	if in.AIInstructions.Set {
		var hint *string
		if v := in.AIInstructions.Value; v != nil && strings.TrimSpace(*v) != "" {
			hint = v
		}
		updates["ai_instructions"] = hint
	}
	if in.Pinned != nil {
		updates["pinned"] = *in.Pinned
	}
	if in.Visible != nil {
		updates["visible"] = *in.Visible
	}
	if in.OrderIndex != nil {
		updates["order_index"] = *in.OrderIndex
	}

	c, err := s.cols.Update(ctx, id, updates)
	if err != nil {
		return nil, translateErr(err, "column", id)
	}
	invalidateView(ctx, s.cache, s.log, c.ViewID)
	return c, nil
}

// Delete removes the column and the cells and formats stored under its key
// in the owning view. Unknown ids are a no-op.
func (s *columnService) Delete(ctx context.Context, id uint) error {
	c, err := s.cols.Delete(ctx, id)
	if err != nil {
		return translateErr(err, "column", id)
	}
	if c == nil {
		return nil
	}
	s.log.Info("column deleted", zap.Uint("view_id", c.ViewID), zap.String("key", c.Key))
	invalidateView(ctx, s.cache, s.log, c.ViewID)
	return nil
}

func cleanOptions(opts []string) model.SelectOptions {
	out := make(model.SelectOptions, 0, len(opts))
	seen := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
