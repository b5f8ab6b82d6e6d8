package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

type ViewHandler struct {
	svc  service.ViewService
	data service.ViewDataService
}

func NewViewHandler(s service.ViewService, data service.ViewDataService) *ViewHandler {
	return &ViewHandler{svc: s, data: data}
}

// ListViews godoc
//
//	@Summary	List views
//	@Tags		view
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.View}
//	@Router		/views [get]
func (h *ViewHandler) ListViews(c *gin.Context) {
	views, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: views})
}

type CreateViewReq struct {
	Name           string `json:"name" binding:"required,max=255" example:"Shortlist"`
	CopyFromViewID *uint  `json:"copy_from_view_id" binding:"omitempty,min=1"`
}

// CreateView godoc
//
//	@Summary		Create view
//	@Description	Create an empty view, or copy the columns and cells of an existing one.
//	@Tags			view
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateViewReq	true	"CreateView payload"
//	@Success		201		{object}	serializer.Response{data=model.View}
//	@Router			/views [post]
func (h *ViewHandler) CreateView(c *gin.Context) {
	req := CreateViewReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	v, err := h.svc.Create(c.Request.Context(), service.CreateViewInput{
		Name:           req.Name,
		CopyFromViewID: req.CopyFromViewID,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: v})
}

func (h *ViewHandler) DeleteView(c *gin.Context) {
	id, ok := uintParam(c, "view_id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

type GetViewDataReq struct {
	Display bool `form:"display,default=false" json:"display"`
}

// GetViewData godoc
//
//	@Summary		Get view data
//	@Description	Dense rows for every university with one key per visible column of the view.
//	@Tags			view
//	@Produce		json
//	@Param			view_id	path		integer	true	"View ID"
//	@Param			display	query		boolean	false	"Render cells through their column type"
//	@Success		200		{object}	serializer.Response{data=service.ViewData}
//	@Router			/views/{view_id}/data [get]
func (h *ViewHandler) GetViewData(c *gin.Context) {
	id, ok := uintParam(c, "view_id")
	if !ok {
		return
	}
	req := GetViewDataReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	data, err := h.data.Get(c.Request.Context(), id, service.GetViewDataInput{Display: req.Display})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: data})
}
