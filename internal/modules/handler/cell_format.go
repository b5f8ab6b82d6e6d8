package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

type CellFormatHandler struct {
	svc service.CellFormatService
}

func NewCellFormatHandler(s service.CellFormatService) *CellFormatHandler {
	return &CellFormatHandler{svc: s}
}

// GetCellFormats godoc
//
//	@Summary		Get cell formats of a view
//	@Description	Formats keyed by "<universityId>_<columnKey>".
//	@Tags			cell-format
//	@Produce		json
//	@Param			view_id	path		integer	true	"View ID"
//	@Success		200		{object}	serializer.Response{data=map[string]service.FormatAttributes}
//	@Router			/cell-formats/{view_id} [get]
func (h *CellFormatHandler) GetCellFormats(c *gin.Context) {
	viewID, ok := uintParam(c, "view_id")
	if !ok {
		return
	}
	out, err := h.svc.GetForView(c.Request.Context(), viewID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// SetCellFormatReq carries the cell reference and any subset of attributes.
// An omitted attribute is left as stored, null clears it.
type SetCellFormatReq struct {
	CellRefReq
	BackgroundColor service.Optional[string] `json:"background_color"`
	TextColor       service.Optional[string] `json:"text_color"`
	Bold            service.Optional[bool]   `json:"bold"`
	Italic          service.Optional[bool]   `json:"italic"`
	Underline       service.Optional[bool]   `json:"underline"`
	FontSize        service.Optional[string] `json:"font_size"`
	TextAlign       service.Optional[string] `json:"text_align"`
	BorderColor     service.Optional[string] `json:"border_color"`
	BorderStyle     service.Optional[string] `json:"border_style"`
	BorderWidth     service.Optional[string] `json:"border_width"`
}

// SetCellFormat godoc
//
//	@Summary		Set cell format
//	@Description	Merge attributes into the cell's formatting. data is null when nothing visible remains.
//	@Tags			cell-format
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.SetCellFormatReq	true	"SetCellFormat payload"
//	@Success		200		{object}	serializer.Response{data=service.FormatAttributes}
//	@Router			/cell-formats [post]
func (h *CellFormatHandler) SetCellFormat(c *gin.Context) {
	req := SetCellFormatReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Set(c.Request.Context(), service.SetFormatInput{
		UniversityID: req.UniversityID,
		ColumnKey:    req.ColumnKey,
		ViewID:       req.ViewID,
		Patch: service.FormatPatch{
			BackgroundColor: req.BackgroundColor,
			TextColor:       req.TextColor,
			Bold:            req.Bold,
			Italic:          req.Italic,
			Underline:       req.Underline,
			FontSize:        req.FontSize,
			TextAlign:       req.TextAlign,
			BorderColor:     req.BorderColor,
			BorderStyle:     req.BorderStyle,
			BorderWidth:     req.BorderWidth,
		},
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	if out == nil {
		c.JSON(http.StatusOK, serializer.Response{})
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *CellFormatHandler) ClearCellFormat(c *gin.Context) {
	req := CellRefReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := h.svc.Clear(c.Request.Context(), req.UniversityID, req.ColumnKey, req.ViewID); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
