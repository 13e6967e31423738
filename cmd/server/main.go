package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/config"
	"github.com/klsociety/governance-records-api/internal/constants"
	"github.com/klsociety/governance-records-api/internal/database"
	"github.com/klsociety/governance-records-api/internal/handlers"
	"github.com/klsociety/governance-records-api/internal/middleware"
	"github.com/klsociety/governance-records-api/internal/otp"
	"github.com/klsociety/governance-records-api/internal/repository"
	"github.com/klsociety/governance-records-api/internal/seed"
	"github.com/klsociety/governance-records-api/internal/services"
	"github.com/klsociety/governance-records-api/internal/tasks"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Seed reference data and the bootstrap admin
	if err := seed.EnsureRoles(db); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}
	if err := seed.EnsureAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Initialize repositories
	instituteRepo := repository.NewInstituteRepository(db)
	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	memberRoleRepo := repository.NewMemberRoleRepository(db)
	gcRepo := repository.NewGCResolutionRepository(db)
	bomRepo := repository.NewBOMResolutionRepository(db)
	agmRepo := repository.NewAGMRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	// Visibility scoping
	resolver := authz.NewResolver(memberRepo)

	// One-time password store with periodic expiry sweep
	otpStore := otp.NewStore(constants.OTPTTL)
	sweeper := tasks.NewOTPSweeper(otpStore)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize services
	authService := services.NewAuthService(userRepo, memberRepo, otpStore, cfg.JWTSecret)
	instituteService := services.NewInstituteService(instituteRepo)
	memberService := services.NewMemberService(memberRepo, resolver)
	memberRoleService := services.NewMemberRoleService(memberRoleRepo, memberRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo)
	gcService := services.NewGCResolutionService(gcRepo, resolver)
	bomService := services.NewBOMResolutionService(bomRepo, resolver)
	agmService := services.NewAGMService(agmRepo, resolver)
	statisticsService := services.NewStatisticsService(statsRepo, resolver)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	instituteHandler := handlers.NewInstituteHandler(instituteService)
	memberHandler := handlers.NewMemberHandler(memberService, memberRoleService)
	memberRoleHandler := handlers.NewMemberRoleHandler(memberRoleService)
	roleHandler := handlers.NewRoleHandler(roleService)
	gcHandler := handlers.NewGCResolutionHandler(gcService)
	bomHandler := handlers.NewBOMResolutionHandler(bomService)
	agmHandler := handlers.NewAGMHandler(agmService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Governance Records API is running",
		})
	})

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	// Auth routes (public except password change)
	user := r.Group("/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/validateUser", authHandler.ValidateUser)
		user.POST("/forgotPassword", authHandler.ForgotPassword)
		user.POST("/resetPassword", authHandler.ResetPassword)
		user.POST("/changePassword", requireAuth, authHandler.ChangePassword)
	}

	// Institute routes (protected)
	institutes := r.Group("/institute")
	institutes.Use(requireAuth)
	{
		institutes.GET("", instituteHandler.ListInstitutes)
		institutes.POST("", instituteHandler.CreateInstitute)
		institutes.GET("/:id", instituteHandler.GetInstitute)
		institutes.PUT("/:id", instituteHandler.UpdateInstitute)
		institutes.DELETE("/:id", instituteHandler.DeleteInstitute)
	}

	// GC resolution routes (protected)
	gc := r.Group("/gc_resolutions")
	gc.Use(requireAuth)
	{
		gc.GET("", gcHandler.ListGCResolutions)
		gc.POST("", gcHandler.CreateGCResolution)
		gc.GET("/:id", gcHandler.GetGCResolution)
		gc.PUT("/:id", gcHandler.UpdateGCResolution)
		gc.DELETE("/:id", gcHandler.DeleteGCResolution)
	}

	// BOM resolution routes (protected)
	bom := r.Group("/bom_resolutions")
	bom.Use(requireAuth)
	{
		bom.GET("", bomHandler.ListBOMResolutions)
		bom.POST("", bomHandler.CreateBOMResolution)
		bom.GET("/:id", bomHandler.GetBOMResolution)
		bom.PUT("/:id", bomHandler.UpdateBOMResolution)
		bom.DELETE("/:id", bomHandler.DeleteBOMResolution)
	}

	// Member routes (protected)
	members := r.Group("/members")
	members.Use(requireAuth)
	{
		members.GET("", memberHandler.ListMembers)
		members.POST("", memberHandler.CreateMember)
		members.POST("/assignRole", memberHandler.AssignRole)
		members.GET("/:id", memberHandler.GetMember)
		members.PUT("/:id", memberHandler.UpdateMember)
		members.DELETE("/:id", memberHandler.DeleteMember)
	}

	// Role assignment routes (protected)
	memberRoles := r.Group("/memberrole")
	memberRoles.Use(requireAuth)
	{
		memberRoles.GET("", memberRoleHandler.ListAssignments)
		memberRoles.POST("", memberHandler.AssignRole)
		memberRoles.GET("/:id", memberRoleHandler.GetAssignment)
		memberRoles.PUT("/:id", memberRoleHandler.UpdateAssignment)
		memberRoles.DELETE("/:id", memberRoleHandler.DeleteAssignment)
	}

	// Role routes (protected)
	roles := r.Group("/roles")
	roles.Use(requireAuth)
	{
		roles.GET("", roleHandler.ListRoles)
		roles.POST("", roleHandler.CreateRole)
		roles.GET("/:id", roleHandler.GetRole)
		roles.PUT("/:id", roleHandler.UpdateRole)
		roles.DELETE("/:id", roleHandler.DeleteRole)
	}

	// AGM routes (protected)
	agm := r.Group("/agm")
	agm.Use(requireAuth)
	{
		agm.GET("", agmHandler.ListAGMs)
		agm.POST("", agmHandler.CreateAGM)
		agm.GET("/by-member/all", agmHandler.ListAGMs)
		agm.GET("/:id", agmHandler.GetAGM)
		agm.PUT("/:id", agmHandler.UpdateAGM)
		agm.DELETE("/:id", agmHandler.DeleteAGM)
	}

	// Dashboard counts (protected)
	r.GET("/statistics", requireAuth, statisticsHandler.GetStatistics)

	// Start server
	log.Printf("Server starting on :%s", cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
