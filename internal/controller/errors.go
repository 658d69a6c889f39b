package controller

import (
	"errors"
	"net/http"

	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/gin-gonic/gin"
)

// respondError maps service sentinel errors to status codes; anything else is a logged 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrUsernameTaken),
		errors.Is(err, util.ErrTagExists):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidPayload),
		errors.Is(err, util.ErrEmptyExplanation),
		errors.Is(err, util.ErrInvalidQuestionType),
		errors.Is(err, util.ErrMissingOptions),
		errors.Is(err, util.ErrUnknownTag),
		errors.Is(err, util.ErrInvalidImage),
		errors.Is(err, util.ErrInvalidRole):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// pathID reads a positive identifier from the route, answering 404 when it is malformed.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParseID(ctx.Param(name))
	if !ok {
		util.NotFound(ctx)
	}
	return id, ok
}
