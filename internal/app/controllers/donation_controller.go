package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/services"
	"github.com/yigit/alumniconnect/internal/middleware"
)

// DonationController handles donations
type DonationController struct {
	donationService services.DonationService
}

// NewDonationController creates a new DonationController
func NewDonationController(donationService services.DonationService) *DonationController {
	return &DonationController{donationService: donationService}
}

// List returns the caller's donations, or all of them for admins.
// Anonymous donations never carry a donor name.
// @Summary List donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DonationResponse}
// @Router /donations [get]
func (c *DonationController) List(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	donations, err := c.donationService.List(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, donations)
}

// Create records a donation
// @Summary Donate
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDonationRequest true "Donation"
// @Success 201 {object} dto.APIResponse{data=dto.DonationResponse}
// @Failure 400 {object} dto.ErrorResponse "Amount must be positive"
// @Router /donations [post]
func (c *DonationController) Create(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req dto.CreateDonationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	donation, err := c.donationService.Create(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, donation)
}

// Stats returns donation totals
// @Summary Donation statistics
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DonationStatsResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Router /donations/stats [get]
func (c *DonationController) Stats(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	stats, err := c.donationService.Stats(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, stats)
}
