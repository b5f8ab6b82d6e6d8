package model

import "time"

// ValueHistory is an append-only record of a cell change with provenance.
type ValueHistory struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	UniversityID uint     `gorm:"not null;index:ix_values_history_university_id" json:"university_id"`
	ColumnKey    string   `gorm:"type:text;not null" json:"column_key"`
	ViewID       uint     `gorm:"not null;index:ix_values_history_view_id" json:"view_id"`
	OldValue     *string  `gorm:"type:text" json:"old_value"`
	NewValue     *string  `gorm:"type:text" json:"new_value"`
	Source       *string  `gorm:"type:text" json:"source"`
	Confidence   *float64 `json:"confidence"`
	Notes        *string  `gorm:"type:text" json:"notes"`

	Timestamp time.Time `gorm:"autoCreateTime;not null" json:"timestamp"`

	// ValueHistory <-> University
	University *University `gorm:"foreignKey:UniversityID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// ValueHistory <-> View
	View *View `gorm:"foreignKey:ViewID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ValueHistory) TableName() string { return "values_history" }
