package model

import "time"

type University struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"type:text;not null;index:ix_universities_name" json:"name"`
	Country *string `gorm:"type:text" json:"country"`
	State   *string `gorm:"type:text" json:"state"`
	City    *string `gorm:"type:text" json:"city"`
	Type    *string `gorm:"type:text" json:"type"`
	Website *string `gorm:"type:text" json:"website"`
	Notes   *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`
}

func (University) TableName() string { return "universities" }

// Fields returns the descriptive attributes as a flat map, the shape a
// composed spreadsheet row starts from.
func (u University) Fields() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"country":    u.Country,
		"state":      u.State,
		"city":       u.City,
		"type":       u.Type,
		"website":    u.Website,
		"notes":      u.Notes,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
