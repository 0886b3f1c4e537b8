package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/services"
	"github.com/yigit/alumniconnect/internal/middleware"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// ApplicationController handles job applications
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// List returns the applications visible to the caller
// @Summary List applications
// @Description Students see their own applications, alumni see applications to jobs they posted, admins see all. With job_id only that job's applications are returned and the caller must own the job.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param job_id query string false "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID"
// @Failure 403 {object} dto.ErrorResponse "Not your job"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var jobID int64
	if raw := ctx.Query("job_id"); raw != "" {
		jobID, ok = helpers.ParseID(raw)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid job ID").WithField("job_id")))
			return
		}
	}

	apps, err := c.applicationService.List(ctx.Request.Context(), caller, jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.NewApplicationResponses(apps))
}

// Create applies to a job
// @Summary Apply to job
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Already applied"
// @Failure 403 {object} dto.ErrorResponse "Only students can apply"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /applications [post]
func (c *ApplicationController) Create(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applicationService.Create(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, dto.NewApplicationResponse(app))
}

// UpdateStatus moves an application to a new status
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.UpdateStatusRequest true "pending, reviewed, accepted or rejected"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", "application")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applicationService.UpdateStatus(ctx.Request.Context(), caller, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, http.StatusOK, MsgUpdated, dto.NewApplicationResponse(app))
}
