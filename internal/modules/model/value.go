package model

import "time"

// Value is one spreadsheet cell. The text is opaque: it is never checked
// against the column type.
type Value struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	UniversityID uint    `gorm:"not null;uniqueIndex:uq_values_cell,priority:1" json:"university_id"`
	ColumnKey    string  `gorm:"type:text;not null;uniqueIndex:uq_values_cell,priority:2" json:"column_key"`
	ViewID       uint    `gorm:"not null;uniqueIndex:uq_values_cell,priority:3;index:ix_values_view_id" json:"view_id"`
	Value        *string `gorm:"type:text" json:"value"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`

	// Value <-> University
	University *University `gorm:"foreignKey:UniversityID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Value <-> View
	View *View `gorm:"foreignKey:ViewID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Value) TableName() string { return "values" }
