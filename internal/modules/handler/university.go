package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

type UniversityHandler struct {
	svc     service.UniversityService
	history service.HistoryService
}

func NewUniversityHandler(s service.UniversityService, history service.HistoryService) *UniversityHandler {
	return &UniversityHandler{svc: s, history: history}
}

type UniversityReq struct {
	Name    string  `json:"name" binding:"required,max=255" example:"ETH Zurich"`
	Country *string `json:"country" example:"CH"`
	State   *string `json:"state"`
	City    *string `json:"city" example:"Zurich"`
	Type    *string `json:"type" example:"Public"`
	Website *string `json:"website" binding:"omitempty,url"`
	Notes   *string `json:"notes"`
}

func (r UniversityReq) input() service.UniversityInput {
	return service.UniversityInput(r)
}

// ListUniversities godoc
//
//	@Summary	List universities
//	@Tags		university
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.University}
//	@Router		/universities [get]
func (h *UniversityHandler) ListUniversities(c *gin.Context) {
	unis, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: unis})
}

func (h *UniversityHandler) GetUniversity(c *gin.Context) {
	id, ok := uintParam(c, "university_id")
	if !ok {
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: u})
}

// CreateUniversity godoc
//
//	@Summary	Create university
//	@Tags		university
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.UniversityReq	true	"CreateUniversity payload"
//	@Success	201		{object}	serializer.Response{data=model.University}
//	@Router		/universities [post]
func (h *UniversityHandler) CreateUniversity(c *gin.Context) {
	req := UniversityReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: u})
}

func (h *UniversityHandler) UpdateUniversity(c *gin.Context) {
	id, ok := uintParam(c, "university_id")
	if !ok {
		return
	}
	req := UniversityReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: u})
}

func (h *UniversityHandler) DeleteUniversity(c *gin.Context) {
	id, ok := uintParam(c, "university_id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

// GetUniversityHistory godoc
//
//	@Summary		Get value history
//	@Description	Every recorded change to the university's cells, newest first.
//	@Tags			university
//	@Produce		json
//	@Param			university_id	path		integer	true	"University ID"
//	@Success		200				{object}	serializer.Response{data=[]model.ValueHistory}
//	@Router			/universities/{university_id}/history [get]
func (h *UniversityHandler) GetUniversityHistory(c *gin.Context) {
	id, ok := uintParam(c, "university_id")
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	entries, err := h.history.ListForUniversity(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: entries})
}
