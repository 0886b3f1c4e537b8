package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniconnect/internal/app/controllers"
	"github.com/yigit/alumniconnect/internal/middleware"
	"github.com/yigit/alumniconnect/internal/pkg/realtime"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Job         *controllers.JobController
	Application *controllers.ApplicationController
	Event       *controllers.EventController
	Donation    *controllers.DonationController
	Mentorship  *controllers.MentorshipController
	Message     *controllers.MessageController
	Realtime    *realtime.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router gin.IRouter, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// --- Public routes ---
	router.POST("/register", c.Auth.Register)
	router.POST("/login", c.Auth.Login)

	// --- Authenticated routes ---
	// JWTAuth also rejects alumni whose account is still pending
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/me", c.User.GetMe)

	users := authenticated.Group("/users")
	{
		users.GET("/me", c.User.GetMe)
		users.PATCH("/me", c.User.UpdateMe)
		users.GET("/alumni", c.User.ListAlumni)
		users.GET("/students", c.User.ListStudents)
		users.GET("/pending", c.User.ListPending)
		users.POST("/:id/approve", c.User.Approve)
		users.POST("/:id/reject", c.User.Reject)
	}

	jobs := authenticated.Group("/jobs")
	{
		jobs.GET("", c.Job.List)
		jobs.POST("", c.Job.Create)
		jobs.GET("/:id", c.Job.Get)
		jobs.PATCH("/:id", c.Job.Update)
		jobs.DELETE("/:id", c.Job.Delete)
	}

	applications := authenticated.Group("/applications")
	{
		applications.GET("", c.Application.List)
		applications.POST("", c.Application.Create)
		applications.PATCH("/:id", c.Application.UpdateStatus)
	}

	events := authenticated.Group("/events")
	{
		events.GET("", c.Event.List)
		events.POST("", c.Event.Create)
		events.GET("/:id", c.Event.Get)
		events.PATCH("/:id", c.Event.Update)
		events.DELETE("/:id", c.Event.Delete)
		events.POST("/:id/register", c.Event.Register)
		events.DELETE("/:id/register", c.Event.Unregister)
	}

	donations := authenticated.Group("/donations")
	{
		donations.GET("", c.Donation.List)
		donations.POST("", c.Donation.Create)
		donations.GET("/stats", c.Donation.Stats)
	}

	mentorship := authenticated.Group("/mentorship")
	{
		mentorship.GET("", c.Mentorship.List)
		mentorship.POST("", c.Mentorship.Create)
		mentorship.PATCH("/:id", c.Mentorship.UpdateStatus)
	}

	// The {id} segment is the other user's id on the bare conversation path
	// and the conversation id below it
	messages := authenticated.Group("/messages")
	{
		messages.GET("/conversations", c.Message.ListConversations)
		messages.GET("/conversations/:id", c.Message.OpenConversation)
		messages.GET("/conversations/:id/messages", c.Message.ListMessages)
		messages.POST("/conversations/:id/messages", c.Message.SendMessage)
		messages.POST("/conversations/:id/read", c.Message.MarkRead)
		if c.Realtime != nil {
			messages.GET("/ws", c.Realtime.HandleConnection)
		}
	}
}
