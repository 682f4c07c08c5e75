package routes

import (
	"teamflow-backend/internal/api/handlers"
	"teamflow-backend/internal/api/middleware"
	"teamflow-backend/internal/auth"
	"teamflow-backend/internal/config"
	"teamflow-backend/internal/logger"
	"teamflow-backend/internal/repository"
	"teamflow-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	validator := validator.New()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authorizer := service.NewAuthorizer(membershipRepo)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		logger.New().WithError(err).Fatal("Failed to initialize email service")
	}

	userService := service.NewUserService(userRepo, authorizer, validator)
	organizationService := service.NewOrganizationService(organizationRepo, authorizer, validator)
	membershipService := service.NewMembershipService(membershipRepo, userRepo, authorizer, validator)
	invitationService := service.NewInvitationService(
		invitationRepo, membershipRepo, userRepo, organizationRepo,
		authorizer, emailService, validator,
		cfg.InvitationExpiry(), cfg.FrontendURL,
	)
	projectService := service.NewProjectService(projectRepo, authorizer, validator)
	taskService := service.NewTaskService(taskRepo, projectRepo, membershipRepo, authorizer, validator)

	authService := auth.NewAuthService(userRepo, validator, cfg.JWTSecret, cfg.JWTExpiry())
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := auth.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health and docs
	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public auth endpoints
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	// Public invitation validation (linked from emails, no auth yet)
	router.GET("/api/v1/invitations/validate", invitationHandler.ValidateInvitation)

	// Authenticated API
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.PATCH("/users/me", userHandler.UpdateProfile)

		v1.POST("/organizations", organizationHandler.CreateOrganization)
		v1.GET("/organizations", organizationHandler.ListOrganizations)
		v1.GET("/organizations/:orgID", organizationHandler.GetOrganization)
		v1.PATCH("/organizations/:orgID", organizationHandler.UpdateOrganization)

		v1.GET("/organizations/:orgID/users", userHandler.ListUsers)

		v1.GET("/organizations/:orgID/members", membershipHandler.ListMembers)
		v1.PATCH("/organizations/:orgID/members/:userID", membershipHandler.UpdateMemberRole)
		v1.DELETE("/organizations/:orgID/members/:userID", membershipHandler.RemoveMember)

		v1.POST("/organizations/:orgID/invitations", invitationHandler.IssueInvitation)
		v1.GET("/organizations/:orgID/invitations", invitationHandler.ListInvitations)
		v1.POST("/invitations/accept", invitationHandler.AcceptInvitation)
		v1.DELETE("/invitations/:invitationID", invitationHandler.RevokeInvitation)
		v1.POST("/invitations/:invitationID/resend", invitationHandler.ResendInvitation)

		v1.POST("/organizations/:orgID/projects", projectHandler.CreateProject)
		v1.GET("/organizations/:orgID/projects", projectHandler.ListProjects)
		v1.GET("/projects/:projectID", projectHandler.GetProject)
		v1.PATCH("/projects/:projectID", projectHandler.UpdateProject)
		v1.DELETE("/projects/:projectID", projectHandler.DeleteProject)

		v1.POST("/projects/:projectID/tasks", taskHandler.CreateTask)
		v1.GET("/projects/:projectID/tasks", taskHandler.ListTasks)
		v1.GET("/tasks/:taskID", taskHandler.GetTask)
		v1.PATCH("/tasks/:taskID", taskHandler.UpdateTask)
		v1.DELETE("/tasks/:taskID", taskHandler.DeleteTask)
		v1.POST("/tasks/:taskID/comments", taskHandler.AddComment)
		v1.GET("/tasks/:taskID/comments", taskHandler.ListComments)
		v1.POST("/tasks/:taskID/worklogs", taskHandler.AddWorkLog)
		v1.GET("/tasks/:taskID/worklogs", taskHandler.ListWorkLogs)
		v1.GET("/organizations/:orgID/worklogs/summary", taskHandler.WorkLogSummary)
	}

	return router
}
