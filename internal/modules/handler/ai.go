package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/infra/llm"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

type AIHandler struct {
	svc service.AIRefreshService
}

func NewAIHandler(s service.AIRefreshService) *AIHandler {
	return &AIHandler{svc: s}
}

type RefreshReq struct {
	UniversityIDs []uint   `json:"university_ids" binding:"omitempty,dive,min=1"`
	ColumnKeys    []string `json:"column_keys" binding:"omitempty,dive,required"`
}

// RefreshView godoc
//
//	@Summary		Refresh cells with AI
//	@Description	Ask the AI provider for new values, one university at a time. A provider failure stops the run and returns 502 with the cells written so far.
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			view_id	path		integer				true	"View ID"
//	@Param			payload	body		handler.RefreshReq	false	"RefreshView payload"
//	@Success		200		{object}	serializer.Response{data=service.RefreshOutput}
//	@Failure		502		{object}	serializer.Response{data=service.RefreshOutput}
//	@Router			/views/{view_id}/ai-refresh [post]
func (h *AIHandler) RefreshView(c *gin.Context) {
	viewID, ok := uintParam(c, "view_id")
	if !ok {
		return
	}
	req := RefreshReq{}
	// an empty body refreshes every university and visible column
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Refresh(c.Request.Context(), viewID, service.RefreshInput{
		UniversityIDs: req.UniversityIDs,
		ColumnKeys:    req.ColumnKeys,
	})
	if err != nil {
		if errors.Is(err, service.ErrUpstream) && out != nil {
			c.JSON(http.StatusBadGateway, serializer.UpstreamErr("", err, out))
			return
		}
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Generate godoc
//
//	@Summary		Generate values for one university
//	@Description	Passes the request to the configured provider. Instances running in proxy mode call this endpoint.
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		llm.Request	true	"Generate payload"
//	@Success		200		{object}	serializer.Response{data=[]llm.Result}
//	@Router			/ai [post]
func (h *AIHandler) Generate(c *gin.Context) {
	req := llm.Request{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	results, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: results})
}
