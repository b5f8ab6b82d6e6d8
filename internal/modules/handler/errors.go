package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/modules/service"
)

// writeErr maps a service error onto its status code and envelope.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(err.Error(), err))
	case errors.Is(err, service.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, serializer.UnavailableErr("", err))
	case errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusBadGateway, serializer.UpstreamErr("", err, nil))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// uintParam reads a numeric path parameter. It writes a 400 and returns
// false when the parameter is not a positive integer.
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return 0, false
	}
	return uint(id), true
}
