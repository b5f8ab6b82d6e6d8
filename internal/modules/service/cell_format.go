package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormatAttributes is the client-facing shape of a cell's formatting.
type FormatAttributes struct {
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	TextColor       *string `json:"textColor,omitempty"`
	Bold            *bool   `json:"bold,omitempty"`
	Italic          *bool   `json:"italic,omitempty"`
	Underline       *bool   `json:"underline,omitempty"`
	FontSize        *string `json:"fontSize,omitempty"`
	TextAlign       *string `json:"textAlign,omitempty"`
	BorderColor     *string `json:"borderColor,omitempty"`
	BorderStyle     *string `json:"borderStyle,omitempty"`
	BorderWidth     *string `json:"borderWidth,omitempty"`
}

// FormatPatch updates a cell's formatting attribute by attribute: an omitted
// field leaves the stored attribute unchanged, an explicit null clears it and
// a value (including false) sets it.
type FormatPatch struct {
	BackgroundColor Optional[string] `json:"backgroundColor"`
	TextColor       Optional[string] `json:"textColor"`
	Bold            Optional[bool]   `json:"bold"`
	Italic          Optional[bool]   `json:"italic"`
	Underline       Optional[bool]   `json:"underline"`
	FontSize        Optional[string] `json:"fontSize"`
	TextAlign       Optional[string] `json:"textAlign"`
	BorderColor     Optional[string] `json:"borderColor"`
	BorderStyle     Optional[string] `json:"borderStyle"`
	BorderWidth     Optional[string] `json:"borderWidth"`
}

type SetFormatInput struct {
	UniversityID uint
	ColumnKey    string
	ViewID       uint
	Patch        FormatPatch
}

type CellFormatService interface {
	// GetForView returns formats keyed by "<universityId>_<columnKey>".
	GetForView(ctx context.Context, viewID uint) (map[string]FormatAttributes, error)
	// Set merges the patch into the cell's formatting. It returns nil when
	// the merged result has no visible attribute and the row was removed.
	Set(ctx context.Context, in SetFormatInput) (*FormatAttributes, error)
	Clear(ctx context.Context, universityID uint, columnKey string, viewID uint) error
}

type cellFormatService struct {
	r   repo.CellFormatRepo
	log *zap.Logger
}

func NewCellFormatService(r repo.CellFormatRepo, log *zap.Logger) CellFormatService {
	return &cellFormatService{r: r, log: log}
}

func FormatKey(universityID uint, columnKey string) string {
	return fmt.Sprintf("%d_%s", universityID, columnKey)
}

func (s *cellFormatService) GetForView(ctx context.Context, viewID uint) (map[string]FormatAttributes, error) {
	items, err := s.r.ListByView(ctx, viewID)
	if err != nil {
		return nil, translateErr(err, "view", viewID)
	}
	out := make(map[string]FormatAttributes, len(items))
	for _, f := range items {
		out[FormatKey(f.UniversityID, f.ColumnKey)] = toAttributes(f)
	}
	return out, nil
}

func (s *cellFormatService) Set(ctx context.Context, in SetFormatInput) (*FormatAttributes, error) {
	key := strings.TrimSpace(in.ColumnKey)
	if key == "" || in.UniversityID == 0 || in.ViewID == 0 {
		return nil, validationErr("university_id, column_key and view_id are required")
	}

	cur, err := s.r.Get(ctx, in.UniversityID, key, in.ViewID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cur = &model.CellFormat{UniversityID: in.UniversityID, ColumnKey: key, ViewID: in.ViewID}
	case err != nil:
		return nil, translateErr(err, "cell format", key)
	}

	merged := *cur
	p := in.Patch
	p.BackgroundColor.apply(&merged.BackgroundColor)
	p.TextColor.apply(&merged.TextColor)
	p.Bold.apply(&merged.Bold)
	p.Italic.apply(&merged.Italic)
	p.Underline.apply(&merged.Underline)
	p.FontSize.apply(&merged.FontSize)
	p.TextAlign.apply(&merged.TextAlign)
	p.BorderColor.apply(&merged.BorderColor)
	p.BorderStyle.apply(&merged.BorderStyle)
	p.BorderWidth.apply(&merged.BorderWidth)

	if merged.IsEmpty() {
		if err := s.r.Delete(ctx, in.UniversityID, key, in.ViewID); err != nil {
			return nil, translateErr(err, "cell format", key)
		}
		return nil, nil
	}

	if err := s.r.Save(ctx, &merged); err != nil {
		return nil, translateErr(err, "cell format", key)
	}
	attrs := toAttributes(merged)
	return &attrs, nil
}

func (s *cellFormatService) Clear(ctx context.Context, universityID uint, columnKey string, viewID uint) error {
	if err := s.r.Delete(ctx, universityID, columnKey, viewID); err != nil {
		return translateErr(err, "cell format", columnKey)
	}
	return nil
}

func toAttributes(f model.CellFormat) FormatAttributes {
	return FormatAttributes{
		BackgroundColor: f.BackgroundColor,
		TextColor:       f.TextColor,
		Bold:            f.Bold,
		Italic:          f.Italic,
		Underline:       f.Underline,
		FontSize:        f.FontSize,
		TextAlign:       f.TextAlign,
		BorderColor:     f.BorderColor,
		BorderStyle:     f.BorderStyle,
		BorderWidth:     f.BorderWidth,
	}
}
