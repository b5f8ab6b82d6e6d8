package service

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
)

var (
	applicationTypes    = []string{"university", "program"}
	applicationStatuses = []string{"to-do", "in-progress", "interview", "submitted", "accepted", "done"}
	taskPriorities      = []string{"low", "medium", "high"}
)

// PlannerService manages the side lists of the dashboard: applications,
// tasks and grades. Create with an id that already exists replaces that row.
type PlannerService interface {
	ListApplications(ctx context.Context) ([]model.Application, error)
	CreateApplication(ctx context.Context, in ApplicationInput) (*model.Application, error)
	UpdateApplication(ctx context.Context, id string, in ApplicationInput) (*model.Application, error)
	DeleteApplication(ctx context.Context, id string) error

	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, in TaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListGrades(ctx context.Context) ([]model.Grade, error)
	CreateGrade(ctx context.Context, in GradeInput) (*model.Grade, error)
	UpdateGrade(ctx context.Context, id string, in GradeInput) (*model.Grade, error)
	DeleteGrade(ctx context.Context, id string) error
}

type plannerService struct {
	apps   repo.ApplicationRepo
	tasks  repo.TaskRepo
	grades repo.GradeRepo
	unis   repo.UniversityRepo
}

func NewPlannerService(apps repo.ApplicationRepo, tasks repo.TaskRepo, grades repo.GradeRepo, unis repo.UniversityRepo) PlannerService {
	return &plannerService{apps: apps, tasks: tasks, grades: grades, unis: unis}
}

type ApplicationInput struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	Type         string  `json:"type"`
	UniversityID *uint   `json:"university_id"`
	Status       string  `json:"status"`
	Deadline     *string `json:"deadline"`
	Description  *string `json:"description"`
	Notes        *string `json:"notes"`
}

type TaskInput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
}

type GradeInput struct {
	ID       string  `json:"id"`
	Course   string  `json:"course"`
	Grade    string  `json:"grade"`
	Credits  float64 `json:"credits"`
	Semester string  `json:"semester"`
	School   string  `json:"school"`
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

func oneOf(field, v string, allowed []string) error {
	if !slices.Contains(allowed, v) {
		return validationErr("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), v)
	}
	return nil
}

// Applications

func (s *plannerService) ListApplications(ctx context.Context) ([]model.Application, error) {
	items, err := s.apps.List(ctx)
	return items, translateErr(err, "application", "")
}

func (s *plannerService) buildApplication(ctx context.Context, id string, in ApplicationInput) (*model.Application, error) {
	if in.Type == "" {
		in.Type = "university"
	}
	if in.Status == "" {
		in.Status = "to-do"
	}
	if err := oneOf("type", in.Type, applicationTypes); err != nil {
		return nil, err
	}
	if err := oneOf("status", in.Status, applicationStatuses); err != nil {
		return nil, err
	}
	if in.UniversityID != nil {
		if _, err := s.unis.Get(ctx, *in.UniversityID); err != nil {
			return nil, translateErr(err, "university", *in.UniversityID)
		}
	}
	return &model.Application{
		ID:           id,
		Name:         in.Name,
		Type:         in.Type,
		UniversityID: in.UniversityID,
		Status:       in.Status,
		Deadline:     in.Deadline,
		Description:  in.Description,
		Notes:        in.Notes,
	}, nil
}

func (s *plannerService) CreateApplication(ctx context.Context, in ApplicationInput) (*model.Application, error) {
	a, err := s.buildApplication(ctx, idOrNew(in.ID), in)
	if err != nil {
		return nil, err
	}
	if err := s.apps.Create(ctx, a); err != nil {
		return nil, translateErr(err, "application", a.ID)
	}
	return a, nil
}

func (s *plannerService) UpdateApplication(ctx context.Context, id string, in ApplicationInput) (*model.Application, error) {
	a, err := s.buildApplication(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if err := s.apps.Update(ctx, a); err != nil {
		return nil, translateErr(err, "application", id)
	}
	got, err := s.apps.Get(ctx, id)
	return got, translateErr(err, "application", id)
}

func (s *plannerService) DeleteApplication(ctx context.Context, id string) error {
	return translateErr(s.apps.Delete(ctx, id), "application", id)
}

// Tasks

func (s *plannerService) ListTasks(ctx context.Context) ([]model.Task, error) {
	items, err := s.tasks.List(ctx)
	return items, translateErr(err, "task", "")
}

func buildTask(id string, in TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErr("task title is required")
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}
	if err := oneOf("priority", in.Priority, taskPriorities); err != nil {
		return nil, err
	}
	return &model.Task{
		ID:          id,
		Title:       title,
		Description: in.Description,
		Completed:   in.Completed,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
	}, nil
}

func (s *plannerService) CreateTask(ctx context.Context, in TaskInput) (*model.Task, error) {
	t, err := buildTask(idOrNew(in.ID), in)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, translateErr(err, "task", t.ID)
	}
	return t, nil
}

func (s *plannerService) UpdateTask(ctx context.Context, id string, in TaskInput) (*model.Task, error) {
	t, err := buildTask(id, in)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, translateErr(err, "task", id)
	}
	got, err := s.tasks.Get(ctx, id)
	return got, translateErr(err, "task", id)
}

func (s *plannerService) DeleteTask(ctx context.Context, id string) error {
	return translateErr(s.tasks.Delete(ctx, id), "task", id)
}

// Grades

func (s *plannerService) ListGrades(ctx context.Context) ([]model.Grade, error) {
	items, err := s.grades.List(ctx)
	return items, translateErr(err, "grade", "")
}

func buildGrade(id string, in GradeInput) (*model.Grade, error) {
	course := strings.TrimSpace(in.Course)
	if course == "" {
		return nil, validationErr("course is required")
	}
	if in.Credits < 0 {
		return nil, validationErr("credits must not be negative")
	}
	return &model.Grade{
		ID:       id,
		Course:   course,
		Grade:    strings.TrimSpace(in.Grade),
		Credits:  in.Credits,
		Semester: strings.TrimSpace(in.Semester),
		School:   strings.TrimSpace(in.School),
	}, nil
}

func (s *plannerService) CreateGrade(ctx context.Context, in GradeInput) (*model.Grade, error) {
	g, err := buildGrade(idOrNew(in.ID), in)
	if err != nil {
		return nil, err
	}
	if err := s.grades.Create(ctx, g); err != nil {
		return nil, translateErr(err, "grade", g.ID)
	}
	return g, nil
}

func (s *plannerService) UpdateGrade(ctx context.Context, id string, in GradeInput) (*model.Grade, error) {
	g, err := buildGrade(id, in)
	if err != nil {
		return nil, err
	}
	if err := s.grades.Update(ctx, g); err != nil {
		return nil, translateErr(err, "grade", id)
	}
	return g, nil
}

func (s *plannerService) DeleteGrade(ctx context.Context, id string) error {
	return translateErr(s.grades.Delete(ctx, id), "grade", id)
}
