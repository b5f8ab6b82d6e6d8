package model

import "time"

// CellFormat holds presentation attributes for one cell. Every attribute is
// nullable; NULL means "not set".
type CellFormat struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UniversityID uint   `gorm:"not null;uniqueIndex:uq_cell_formats_cell,priority:1" json:"university_id"`
	ColumnKey    string `gorm:"type:text;not null;uniqueIndex:uq_cell_formats_cell,priority:2" json:"column_key"`
	ViewID       uint   `gorm:"not null;uniqueIndex:uq_cell_formats_cell,priority:3;index:ix_cell_formats_view_id" json:"view_id"`

	BackgroundColor *string `gorm:"type:text" json:"background_color"`
	TextColor       *string `gorm:"type:text" json:"text_color"`
	Bold            *bool   `json:"bold"`
	Italic          *bool   `json:"italic"`
	Underline       *bool   `json:"underline"`
	FontSize        *string `gorm:"type:text" json:"font_size"`
	TextAlign       *string `gorm:"type:text" json:"text_align"`
	BorderColor     *string `gorm:"type:text" json:"border_color"`
	BorderStyle     *string `gorm:"type:text" json:"border_style"`
	BorderWidth     *string `gorm:"type:text" json:"border_width"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`

	// CellFormat <-> University
	University *University `gorm:"foreignKey:UniversityID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// CellFormat <-> View
	View *View `gorm:"foreignKey:ViewID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (CellFormat) TableName() string { return "cell_formats" }

// CellFormatAttributeColumns lists the attribute columns of cell_formats in
// the order they were introduced. Older stores may lack the tail of the list.
var CellFormatAttributeColumns = []string{
	"background_color",
	"text_color",
	"bold",
	"italic",
	"underline",
	"font_size",
	"text_align",
	"border_color",
	"border_style",
	"border_width",
}

// IsEmpty reports whether no attribute has a visible effect.
func (f CellFormat) IsEmpty() bool {
	for _, s := range []*string{f.BackgroundColor, f.TextColor, f.FontSize, f.TextAlign, f.BorderColor, f.BorderStyle, f.BorderWidth} {
		if s != nil && *s != "" {
			return false
		}
	}
	for _, b := range []*bool{f.Bold, f.Italic, f.Underline} {
		if b != nil && *b {
			return false
		}
	}
	return true
}
