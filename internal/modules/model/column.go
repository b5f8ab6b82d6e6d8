package model

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/bytedance/sonic"
)

type Column struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ViewID         uint          `gorm:"not null;index:ix_columns_view_id;uniqueIndex:uq_columns_view_key,priority:1" json:"view_id"`
	Key            string        `gorm:"type:text;not null;uniqueIndex:uq_columns_view_key,priority:2" json:"key"`
	Label          string        `gorm:"type:text;not null" json:"label"`
	Type           string        `gorm:"type:text;not null;check:chk_columns_type,type IN ('text','number','date','link','boolean','select','long-text')" json:"type"`
	Section        string        `gorm:"type:text;not null" json:"section"`
	SelectOptions  SelectOptions `gorm:"type:text" json:"select_options"`
	AIInstructions *string       `gorm:"type:text" json:"ai_instructions"`
	Pinned         bool          `gorm:"not null" json:"pinned"`
	Visible        bool          `gorm:"not null" json:"visible"`
	OrderIndex     int           `gorm:"not null;index:ix_columns_order" json:"order_index"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`

	// Column <-> View
	View *View `gorm:"foreignKey:ViewID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Column) TableName() string { return "columns" }

// SelectOptions is the ordered choice list of a select column, stored as a
// JSON array in a text column. A nil list is stored as NULL.
type SelectOptions []string

// Scan implements the sql.Scanner interface for SelectOptions
func (so *SelectOptions) Scan(value interface{}) error {
	if value == nil {
		*so = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to unmarshal select options")
	}
	if len(raw) == 0 {
		*so = nil
		return nil
	}
	return sonic.Unmarshal(raw, (*[]string)(so))
}

// Value implements the driver.Valuer interface for SelectOptions
func (so SelectOptions) Value() (driver.Value, error) {
	if so == nil {
		return nil, nil
	}
	b, err := sonic.Marshal([]string(so))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
