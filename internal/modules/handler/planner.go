package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

// PlannerHandler serves applications, tasks and grades. Their ids are client
// chosen strings.
type PlannerHandler struct {
	svc service.PlannerService
}

func NewPlannerHandler(s service.PlannerService) *PlannerHandler {
	return &PlannerHandler{svc: s}
}

type ApplicationReq struct {
	ID           string  `json:"id" binding:"max=64"`
	Name         *string `json:"name"`
	Type         string  `json:"type" example:"university"`
	UniversityID *uint   `json:"university_id" binding:"omitempty,min=1"`
	Status       string  `json:"status" example:"to-do"`
	Deadline     *string `json:"deadline"`
	Description  *string `json:"description"`
	Notes        *string `json:"notes"`
}

type TaskReq struct {
	ID          string  `json:"id" binding:"max=64"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority" example:"medium"`
}

type GradeReq struct {
	ID       string  `json:"id" binding:"max=64"`
	Course   string  `json:"course" binding:"required"`
	Grade    string  `json:"grade"`
	Credits  float64 `json:"credits" binding:"min=0"`
	Semester string  `json:"semester"`
	School   string  `json:"school"`
}

func (h *PlannerHandler) ListApplications(c *gin.Context) {
	out, err := h.svc.ListApplications(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// CreateApplication godoc
//
//	@Summary		Create application
//	@Description	Track an application. A university application must reference an existing university.
//	@Tags			planner
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.ApplicationReq	true	"CreateApplication payload"
//	@Success		201		{object}	serializer.Response{data=model.Application}
//	@Router			/applications [post]
func (h *PlannerHandler) CreateApplication(c *gin.Context) {
	req := ApplicationReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.CreateApplication(c.Request.Context(), service.ApplicationInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}

func (h *PlannerHandler) UpdateApplication(c *gin.Context) {
	req := ApplicationReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.UpdateApplication(c.Request.Context(), c.Param("id"), service.ApplicationInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PlannerHandler) DeleteApplication(c *gin.Context) {
	if err := h.svc.DeleteApplication(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

func (h *PlannerHandler) ListTasks(c *gin.Context) {
	out, err := h.svc.ListTasks(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PlannerHandler) CreateTask(c *gin.Context) {
	req := TaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.CreateTask(c.Request.Context(), service.TaskInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}

func (h *PlannerHandler) UpdateTask(c *gin.Context) {
	req := TaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.UpdateTask(c.Request.Context(), c.Param("id"), service.TaskInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PlannerHandler) DeleteTask(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

func (h *PlannerHandler) ListGrades(c *gin.Context) {
	out, err := h.svc.ListGrades(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PlannerHandler) CreateGrade(c *gin.Context) {
	req := GradeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.CreateGrade(c.Request.Context(), service.GradeInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}

func (h *PlannerHandler) UpdateGrade(c *gin.Context) {
	req := GradeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.UpdateGrade(c.Request.Context(), c.Param("id"), service.GradeInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PlannerHandler) DeleteGrade(c *gin.Context) {
	if err := h.svc.DeleteGrade(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
