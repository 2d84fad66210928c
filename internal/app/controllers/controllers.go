package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainerapi/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes
// the 400 reply and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseIDQuery reads an optional int64 query parameter; absent means 0. On a
// malformed value it writes the 400 reply and returns false.
func parseIDQuery(ctx *gin.Context, name string) (int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
