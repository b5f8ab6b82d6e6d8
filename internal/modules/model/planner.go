package model

import "time"

type Application struct {
	ID           string  `gorm:"type:text;primaryKey" json:"id"`
	Name         *string `gorm:"type:text" json:"name"`
	Type         string  `gorm:"type:text;not null" json:"type"`
	UniversityID *uint   `gorm:"index:ix_applications_university_id" json:"university_id"`
	Status       string  `gorm:"type:text;not null" json:"status"`
	Deadline     *string `gorm:"type:text" json:"deadline"`
	Description  *string `gorm:"type:text" json:"description"`
	Notes        *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index:ix_applications_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`

	// Application <-> University
	University *University `gorm:"foreignKey:UniversityID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Application) TableName() string { return "applications" }

type Task struct {
	ID          string  `gorm:"type:text;primaryKey" json:"id"`
	Title       string  `gorm:"type:text;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	Completed   bool    `gorm:"not null" json:"completed"`
	DueDate     *string `gorm:"type:text" json:"due_date"`
	Priority    string  `gorm:"type:text;not null" json:"priority"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index:ix_tasks_created_at" json:"created_at"`
}

func (Task) TableName() string { return "tasks" }

type Grade struct {
	ID       string  `gorm:"type:text;primaryKey" json:"id"`
	Course   string  `gorm:"type:text;not null" json:"course"`
	Grade    string  `gorm:"type:text;not null" json:"grade"`
	Credits  float64 `gorm:"not null" json:"credits"`
	Semester string  `gorm:"type:text;not null" json:"semester"`
	School   string  `gorm:"type:text;not null" json:"school"`
}

func (Grade) TableName() string { return "grades" }
