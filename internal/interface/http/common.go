// Package handlers holds the gin HTTP handlers. Handlers stay thin:
// bind and validate the request, call one service method, write the
// response envelope.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/pkg/response"
)

// pageFromQuery reads skip/limit query params. Absent or zero values mean
// an unpaginated read.
func pageFromQuery(c *gin.Context) *repository.Page {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if skip <= 0 && limit <= 0 {
		return nil
	}
	return &repository.Page{Skip: skip, Limit: limit}
}

// serviceError maps service failures onto HTTP statuses.
func serviceError(c *gin.Context, err error) {
	var nf *application.NotFoundError
	var it *application.IllegalTransitionError
	switch {
	case errors.As(err, &nf):
		response.Error[any](c, http.StatusNotFound, nf.Error(), nil)
	case errors.As(err, &it):
		response.Error[any](c, http.StatusConflict, it.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
