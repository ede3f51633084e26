// Package http wires the gin engine: handler construction, middleware
// ordering, and route registration.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appaccess "rentra/internal/application/access"
	rentalusecases "rentra/internal/application/rental/usecases"
	timesheetusecases "rentra/internal/application/timesheet/usecases"
	"rentra/internal/infrastructure/adapters"
	"rentra/internal/infrastructure/auth"
	"rentra/internal/infrastructure/cache"
	"rentra/internal/infrastructure/config"
	"rentra/internal/infrastructure/email"
	"rentra/internal/infrastructure/repository"
	"rentra/internal/interfaces/http/handlers"
	"rentra/internal/interfaces/http/middleware"
	"rentra/internal/shared/db"
	"rentra/internal/shared/logger"
	"rentra/internal/shared/utils"
)

// Privilege level thresholds for gated endpoints. Lower is more
// privileged: admin=1, ops_manager=2, supervisor=3, checker=4.
const (
	levelManager    = 2
	levelSupervisor = 3
)

// Router holds the gin engine and the handlers it dispatches to.
type Router struct {
	engine           *gin.Engine
	rentalHandler    *handlers.RentalHandler
	timesheetHandler *handlers.TimesheetHandler
	accessHandler    *handlers.AccessHandler
	authMiddleware   *middleware.AuthMiddleware
	permMiddleware   *middleware.PermissionMiddleware
	logger           logger.Interface
}

// NewRouter constructs every repository, adapter, use case, and handler
// and returns the assembled router.
func NewRouter(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	rentalRepo := repository.NewRentalRepository(gdb)
	timesheetRepo := repository.NewTimesheetRepository(gdb)
	contactRepo := repository.NewClientContactRepository(gdb)
	roleRepo := repository.NewRoleRepository(gdb)
	permissionRepo := repository.NewPermissionRepository(gdb)
	assignmentRepo := repository.NewAssignmentRepository(gdb)

	assetPort := adapters.NewAssetStatusAdapter(gdb)
	ratePort := adapters.NewRentalRateAdapter(gdb)
	txManager := db.NewTransactionManager(gdb)
	notifier := email.NewNotifier(&cfg.Email, contactRepo, log)

	permCache := cache.NewPermissionCache(
		redisClient,
		time.Duration(cfg.Auth.PermissionCacheTTLSeconds)*time.Second,
		log,
	)
	resolver := appaccess.NewResolver(assignmentRepo, roleRepo, permissionRepo, permCache, log)
	accessService := appaccess.NewService(assignmentRepo, roleRepo, permCache, log)

	rentalHandler := handlers.NewRentalHandler(
		rentalusecases.NewCreateRentalUseCase(rentalRepo, assetPort, log),
		rentalusecases.NewApproveRentalUseCase(rentalRepo, ratePort, notifier, log),
		rentalusecases.NewRejectRentalUseCase(rentalRepo, notifier, log),
		rentalusecases.NewDispatchRentalUseCase(rentalRepo, assetPort, txManager, log),
		rentalusecases.NewReturnRentalUseCase(rentalRepo, assetPort, ratePort, txManager, notifier, log),
		rentalusecases.NewCloseRentalUseCase(rentalRepo, log),
		rentalusecases.NewGetRentalUseCase(rentalRepo, log),
		rentalusecases.NewListRentalsUseCase(rentalRepo, log),
		log,
	)

	timesheetHandler := handlers.NewTimesheetHandler(
		timesheetusecases.NewCreateTimesheetUseCase(timesheetRepo, rentalRepo, log),
		timesheetusecases.NewUpdateTimesheetUseCase(timesheetRepo, cfg.Timesheet.StandardHours, log),
		timesheetusecases.NewSubmitTimesheetUseCase(timesheetRepo, log),
		timesheetusecases.NewVerifyTimesheetUseCase(timesheetRepo, log),
		timesheetusecases.NewReviseTimesheetUseCase(timesheetRepo, log),
		timesheetusecases.NewClientApproveTimesheetUseCase(timesheetRepo, contactRepo, log),
		timesheetusecases.NewGetTimesheetUseCase(timesheetRepo, log),
		timesheetusecases.NewListTimesheetsUseCase(timesheetRepo, log),
		log,
	)

	accessHandler := handlers.NewAccessHandler(accessService, resolver, roleRepo, permissionRepo, log)

	jwtService := auth.NewJWTService(&cfg.Auth)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)
	permMiddleware := middleware.NewPermissionMiddleware(resolver, log)

	return &Router{
		engine:           engine,
		rentalHandler:    rentalHandler,
		timesheetHandler: timesheetHandler,
		accessHandler:    accessHandler,
		authMiddleware:   authMiddleware,
		permMiddleware:   permMiddleware,
		logger:           log,
	}
}

// SetupRoutes registers the middlewares and all API routes. Permission
// checks run before handlers so a denied request never touches state.
func (r *Router) SetupRoutes() {
	utils.RegisterValidatorTagNames()

	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CORS())

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, 200, "ok", gin.H{"status": "healthy"})
	})

	v1 := r.engine.Group("/api/v1")

	rentals := v1.Group("/rentals")
	rentals.Use(r.authMiddleware.RequireAuth())
	{
		rentals.POST("", r.permMiddleware.Require("rental:create"), r.rentalHandler.Create)
		rentals.GET("", r.permMiddleware.Require("rental:read"), r.rentalHandler.List)
		rentals.GET("/:id", r.permMiddleware.Require("rental:read"), r.rentalHandler.Get)

		// Approval decisions are restricted to manager level and above.
		rentals.POST("/:id/approve", r.permMiddleware.RequireLevel("rental:approve", levelManager), r.rentalHandler.Approve)
		rentals.POST("/:id/reject", r.permMiddleware.RequireLevel("rental:reject", levelManager), r.rentalHandler.Reject)

		rentals.POST("/:id/dispatch", r.permMiddleware.Require("rental:dispatch"), r.rentalHandler.Dispatch)
		rentals.POST("/:id/return", r.permMiddleware.Require("rental:return"), r.rentalHandler.Return)
		rentals.POST("/:id/close", r.permMiddleware.Require("rental:close"), r.rentalHandler.Close)
	}

	timesheets := v1.Group("/timesheets")
	timesheets.Use(r.authMiddleware.RequireAuth())
	{
		timesheets.POST("", r.permMiddleware.Require("timesheet:create"), r.timesheetHandler.Create)
		timesheets.GET("", r.permMiddleware.Require("timesheet:read"), r.timesheetHandler.List)
		timesheets.GET("/:id", r.permMiddleware.Require("timesheet:read"), r.timesheetHandler.Get)
		timesheets.PUT("/:id", r.permMiddleware.Require("timesheet:update"), r.timesheetHandler.Update)
		timesheets.POST("/:id/submit", r.permMiddleware.Require("timesheet:submit"), r.timesheetHandler.Submit)

		// Verification is a supervisor decision.
		timesheets.POST("/:id/verify", r.permMiddleware.RequireLevel("timesheet:verify", levelSupervisor), r.timesheetHandler.Verify)

		timesheets.POST("/:id/revise", r.permMiddleware.Require("timesheet:update"), r.timesheetHandler.Revise)
		timesheets.POST("/:id/client-approval", r.permMiddleware.Require("timesheet:client_approve"), r.timesheetHandler.ClientApprove)
	}

	accessGroup := v1.Group("/access")
	accessGroup.Use(r.authMiddleware.RequireAuth())
	{
		accessGroup.POST("/assignments", r.permMiddleware.Require("role:assign"), r.accessHandler.AssignRole)
		accessGroup.PUT("/assignments/:id", r.permMiddleware.Require("role:assign"), r.accessHandler.ExtendAssignment)
		accessGroup.DELETE("/assignments/:id", r.permMiddleware.Require("role:assign"), r.accessHandler.RevokeAssignment)
		accessGroup.GET("/users/:user_id/assignments", r.permMiddleware.Require("role:read"), r.accessHandler.ListUserAssignments)
		accessGroup.GET("/roles", r.permMiddleware.Require("role:read"), r.accessHandler.ListRoles)
		accessGroup.GET("/permissions", r.permMiddleware.Require("role:read"), r.accessHandler.ListPermissions)

		// Any authenticated user may inspect their own grants.
		accessGroup.GET("/me", r.accessHandler.MyPermissions)
	}
}

// Engine exposes the gin engine so the server command can own the
// http.Server lifecycle.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
