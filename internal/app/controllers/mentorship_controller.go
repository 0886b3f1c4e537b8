package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/services"
	"github.com/yigit/alumniconnect/internal/middleware"
)

// MentorshipController handles mentorship requests
type MentorshipController struct {
	mentorshipService services.MentorshipService
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService services.MentorshipService) *MentorshipController {
	return &MentorshipController{mentorshipService: mentorshipService}
}

// List returns requests sent by a student or addressed to an alumni mentor
// @Summary List mentorship requests
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorshipResponse}
// @Router /mentorship [get]
func (c *MentorshipController) List(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	reqs, err := c.mentorshipService.List(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.NewMentorshipResponses(reqs))
}

// Create asks an alumni for mentorship
// @Summary Request mentorship
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorshipRequest true "Request"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipResponse}
// @Failure 403 {object} dto.ErrorResponse "Only students can request mentorship"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Router /mentorship [post]
func (c *MentorshipController) Create(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req dto.CreateMentorshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	created, err := c.mentorshipService.Create(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, dto.NewMentorshipResponse(created))
}

// UpdateStatus accepts or rejects a request
// @Summary Answer mentorship request
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.UpdateStatusRequest true "accepted or rejected"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipResponse}
// @Failure 400 {object} dto.ErrorResponse "Status must be accepted or rejected"
// @Failure 403 {object} dto.ErrorResponse "Not your request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /mentorship/{id} [patch]
func (c *MentorshipController) UpdateStatus(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", "request")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.mentorshipService.UpdateStatus(ctx.Request.Context(), caller, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, http.StatusOK, MsgUpdated, dto.NewMentorshipResponse(updated))
}
