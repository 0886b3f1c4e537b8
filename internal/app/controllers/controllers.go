package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/middleware"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// Response messages shared by several controllers
const (
	MsgUpdated      = "Updated"
	MsgDeleted      = "Deleted"
	MsgRegisteredTo = "Registered"
	MsgUnregistered = "Unregistered"
)

// currentCaller returns the authenticated identity or writes a 401
func currentCaller(ctx *gin.Context) (auth.Caller, bool) {
	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return auth.Caller{}, false
	}
	return caller, true
}

// pathID parses a numeric path parameter or writes a 400
func pathID(ctx *gin.Context, name, label string) (int64, bool) {
	id, ok := helpers.ParseID(ctx.Param(name))
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func respondMessage(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}
