package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

type DocumentHandler struct {
	svc service.DocumentService
}

func NewDocumentHandler(s service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: s}
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: docs})
}

// GetDocument godoc
//
//	@Summary		Get document
//	@Description	Document metadata with its contents as a base64 data URL in file_data.
//	@Tags			document
//	@Produce		json
//	@Param			id	path		integer	true	"Document ID"
//	@Success		200	{object}	serializer.Response{data=service.DocumentContent}
//	@Router			/documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: doc})
}

type CreateDocumentReq struct {
	Name     string   `json:"name" binding:"required,max=255" example:"transcript.pdf"`
	Type     string   `json:"type" example:"application/pdf"`
	Size     int64    `json:"size" binding:"min=0"`
	FileData string   `json:"file_data" binding:"required"`
	Tags     []string `json:"tags"`
}

// CreateDocument godoc
//
//	@Summary	Upload document
//	@Tags		document
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.CreateDocumentReq	true	"CreateDocument payload"
//	@Success	201		{object}	serializer.Response{data=model.Document}
//	@Router		/documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	req := CreateDocumentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	doc, err := h.svc.Create(c.Request.Context(), service.CreateDocumentInput(req))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: doc})
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
