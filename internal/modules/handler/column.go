package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

type ColumnHandler struct {
	svc service.ColumnService
}

func NewColumnHandler(s service.ColumnService) *ColumnHandler {
	return &ColumnHandler{svc: s}
}

// ListColumns godoc
//
//	@Summary	List columns of a view
//	@Tags		column
//	@Produce	json
//	@Param		view_id	path		integer	true	"View ID"
//	@Success	200		{object}	serializer.Response{data=[]model.Column}
//	@Router		/views/{view_id}/columns [get]
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	viewID, ok := uintParam(c, "view_id")
	if !ok {
		return
	}
	cols, err := h.svc.List(c.Request.Context(), viewID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: cols})
}

type CreateColumnReq struct {
	Key            string   `json:"key" binding:"required,max=128" example:"tuition_fee"`
	Label          string   `json:"label" example:"Tuition Fee"`
	Type           string   `json:"type" binding:"omitempty,column_type" example:"number"`
	Section        *string  `json:"section"`
	SelectOptions  []string `json:"select_options"`
	AIInstructions *string  `json:"ai_instructions"`
	Pinned         *bool    `json:"pinned"`
	Visible        *bool    `json:"visible"`
	OrderIndex     *int     `json:"order_index" binding:"omitempty,min=0"`
}

// CreateColumn godoc
//
//	@Summary		Create column
//	@Description	Register a column in the view. Keys are unique per view.
//	@Tags			column
//	@Accept			json
//	@Produce		json
//	@Param			view_id	path		integer					true	"View ID"
//	@Param			payload	body		handler.CreateColumnReq	true	"CreateColumn payload"
//	@Success		201		{object}	serializer.Response{data=model.Column}
//	@Router			/views/{view_id}/columns [post]
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	viewID, ok := uintParam(c, "view_id")
	if !ok {
		return
	}
	req := CreateColumnReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	col, err := h.svc.Create(c.Request.Context(), viewID, service.CreateColumnInput{
		Key:            req.Key,
		Label:          req.Label,
		Type:           req.Type,
		Section:        req.Section,
		SelectOptions:  req.SelectOptions,
		AIInstructions: req.AIInstructions,
		Pinned:         req.Pinned,
		Visible:        req.Visible,
		OrderIndex:     req.OrderIndex,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: col})
}

type UpdateColumnReq struct {
	Label          *string                  `json:"label"`
	Type           *string                  `json:"type" binding:"omitempty,column_type"`
	Section        *string                  `json:"section"`
	SelectOptions  *[]string                `json:"select_options"`
	AIInstructions service.Optional[string] `json:"ai_instructions"`
	Pinned         *bool                    `json:"pinned"`
	Visible        *bool                    `json:"visible"`
	OrderIndex     *int                     `json:"order_index" binding:"omitempty,min=0"`
}

func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	id, ok := uintParam(c, "column_id")
	if !ok {
		return
	}
	req := UpdateColumnReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	col, err := h.svc.Update(c.Request.Context(), id, service.UpdateColumnInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: col})
}

func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	id, ok := uintParam(c, "column_id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
