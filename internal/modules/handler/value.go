package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
	"github.com/unidash/unidash/internal/pkg/cellvalue"
)

type ValueHandler struct {
	svc service.ValueService
}

func NewValueHandler(s service.ValueService) *ValueHandler {
	return &ValueHandler{svc: s}
}

type CellRefReq struct {
	UniversityID uint   `form:"university_id" json:"university_id" binding:"required,min=1"`
	ColumnKey    string `form:"column_key" json:"column_key" binding:"required"`
	ViewID       uint   `form:"view_id" json:"view_id" binding:"required,min=1"`
}

// GetValue godoc
//
//	@Summary		Get cell value
//	@Description	Returns null data when the cell has never been written.
//	@Tags			value
//	@Produce		json
//	@Param			university_id	query		integer	true	"University ID"
//	@Param			column_key		query		string	true	"Column key"
//	@Param			view_id			query		integer	true	"View ID"
//	@Success		200				{object}	serializer.Response{data=model.Value}
//	@Router			/values [get]
func (h *ValueHandler) GetValue(c *gin.Context) {
	req := CellRefReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	v, err := h.svc.GetCell(c.Request.Context(), req.UniversityID, req.ColumnKey, req.ViewID)
	if err != nil {
		writeErr(c, err)
		return
	}
	if v == nil {
		c.JSON(http.StatusOK, serializer.Response{})
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: v})
}

type UpsertValueReq struct {
	CellRefReq
	// Value accepts any JSON scalar. It is stored as text, null clears the cell.
	Value any `json:"value"`
}

// UpsertValue godoc
//
//	@Summary	Write cell value
//	@Tags		value
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.UpsertValueReq	true	"UpsertValue payload"
//	@Success	200		{object}	serializer.Response{data=model.Value}
//	@Router		/values [post]
func (h *ValueHandler) UpsertValue(c *gin.Context) {
	req := UpsertValueReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	text, err := cellvalue.FromAny(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	v, err := h.svc.Upsert(c.Request.Context(), service.UpsertCellInput{
		UniversityID: req.UniversityID,
		ColumnKey:    req.ColumnKey,
		ViewID:       req.ViewID,
		Value:        text,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: v})
}
