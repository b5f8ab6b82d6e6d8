package repo

import (
	"context"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// replaceByID makes Create overwrite an existing row with the same id.
var replaceByID = clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}

type ApplicationRepo interface {
	List(ctx context.Context) ([]model.Application, error)
	Get(ctx context.Context, id string) (*model.Application, error)
	Create(ctx context.Context, a *model.Application) error
	Update(ctx context.Context, a *model.Application) error
	Delete(ctx context.Context, id string) error
}

type applicationRepo struct{ db *gorm.DB }

func NewApplicationRepo(db *gorm.DB) ApplicationRepo {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) List(ctx context.Context) ([]model.Application, error) {
	var items []model.Application
	return items, r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&items).Error
}

func (r *applicationRepo) Get(ctx context.Context, id string) (*model.Application, error) {
	var a model.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) Create(ctx context.Context, a *model.Application) error {
	return r.db.WithContext(ctx).Clauses(replaceByID).Create(a).Error
}

func (r *applicationRepo) Update(ctx context.Context, a *model.Application) error {
	res := r.db.WithContext(ctx).Model(&model.Application{}).Where("id = ?", a.ID).
		Select("name", "type", "university_id", "status", "deadline", "description", "notes", "updated_at").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Application{}).Error
}

type TaskRepo interface {
	List(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id string) error
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	var items []model.Task
	return items, r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&items).Error
}

func (r *taskRepo) Get(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Clauses(replaceByID).Create(t).Error
}

func (r *taskRepo) Update(ctx context.Context, t *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", t.ID).
		Select("title", "description", "completed", "due_date", "priority").
		Updates(t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}

type GradeRepo interface {
	List(ctx context.Context) ([]model.Grade, error)
	Get(ctx context.Context, id string) (*model.Grade, error)
	Create(ctx context.Context, g *model.Grade) error
	Update(ctx context.Context, g *model.Grade) error
	Delete(ctx context.Context, id string) error
}

type gradeRepo struct{ db *gorm.DB }

func NewGradeRepo(db *gorm.DB) GradeRepo {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	var items []model.Grade
	return items, r.db.WithContext(ctx).Order("semester ASC, course ASC").Find(&items).Error
}

func (r *gradeRepo) Get(ctx context.Context, id string) (*model.Grade, error) {
	var g model.Grade
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gradeRepo) Create(ctx context.Context, g *model.Grade) error {
	return r.db.WithContext(ctx).Clauses(replaceByID).Create(g).Error
}

func (r *gradeRepo) Update(ctx context.Context, g *model.Grade) error {
	res := r.db.WithContext(ctx).Model(&model.Grade{}).Where("id = ?", g.ID).
		Select("course", "grade", "credits", "semester", "school").
		Updates(g)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gradeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Grade{}).Error
}
