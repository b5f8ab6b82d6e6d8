package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

type SeedHandler struct {
	svc service.SeedService
}

func NewSeedHandler(s service.SeedService) *SeedHandler {
	return &SeedHandler{svc: s}
}

// Seed godoc
//
//	@Summary		Seed the General view
//	@Description	Create the General view with its columns and built-in universities. Existing rows and edited cells are left alone.
//	@Tags			seed
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=service.SeedResult}
//	@Router			/seed [post]
func (h *SeedHandler) Seed(c *gin.Context) {
	out, err := h.svc.Seed(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
