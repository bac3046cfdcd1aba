package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mbokatech/hall-management-backend/config"
	"github.com/mbokatech/hall-management-backend/database"
	"github.com/mbokatech/hall-management-backend/internal/auditlog"
	"github.com/mbokatech/hall-management-backend/internal/auth"
	"github.com/mbokatech/hall-management-backend/internal/hall"
	"github.com/mbokatech/hall-management-backend/internal/hallquery"
	"github.com/mbokatech/hall-management-backend/internal/hostapp"
	"github.com/mbokatech/hall-management-backend/internal/media"
	"github.com/mbokatech/hall-management-backend/internal/pricing"
	"github.com/mbokatech/hall-management-backend/internal/reports"
	"github.com/mbokatech/hall-management-backend/middleware"

	_ "github.com/mbokatech/hall-management-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	// ========== Halls ==========
	hallRepo := hall.NewRepository(database.DB)
	hallSvc := hall.NewService(hallRepo, auditSvc)
	hallHandler := hall.NewHandler(hallSvc)

	// ========== Pricing ==========
	pricingRepo := pricing.NewRepository(database.DB)
	pricingSvc := pricing.NewService(pricingRepo, auditSvc)
	pricingHandler := pricing.NewHandler(pricingSvc)

	// ========== Media ==========
	mediaRepo := media.NewRepository(database.DB)
	mediaSvc := media.NewService(mediaRepo, auditSvc)
	mediaHandler := media.NewHandler(mediaSvc)

	// ========== Public Read Model ==========
	queryRepo := hallquery.NewRepository(database.DB)
	querySvc := hallquery.NewService(queryRepo, mediaSvc, pricingSvc, cfg.HallDetailCacheTTL)
	queryHandler := hallquery.NewHandler(querySvc)

	// ========== Host Applications ==========
	hostappRepo := hostapp.NewRepository(database.DB)
	hostappSvc := hostapp.NewService(hostappRepo, hallSvc, auditSvc)
	hostappHandler := hostapp.NewHandler(hostappSvc)

	// ========== Reports ==========
	reportRepo := reports.NewRepository(database.DB)
	reportSvc := reports.NewService(reportRepo, reports.NewExporter(), auditSvc)
	reportHandler := reports.NewHandler(reportSvc)

	// ========== Auth Routes ==========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Public (unauthenticated) ==========
	public := api.Group("/public")
	{
		public.GET("/halls", queryHandler.ListPublicHalls)
		public.GET("/halls/:slug", queryHandler.GetPublicHallDetail)
		public.POST("/host-applications", hostappHandler.CreateApplication)
	}

	// ========== Host (owner-scoped) ==========
	host := api.Group("/host")
	host.Use(middleware.AuthMiddleware(cfg, authSvc))

	hostHalls := host.Group("/halls/:id")
	hostHalls.Use(middleware.RequireHallAccess(hallSvc))
	{
		hostHalls.GET("", hallHandler.GetHallByID)
		hostHalls.PATCH("", hallHandler.UpdateHall)

		hostHalls.GET("/roles", hallHandler.ListRoles)
		hostHalls.POST("/roles", hallHandler.AssignRole)
		hostHalls.DELETE("/roles/:userID/:role", hallHandler.RemoveRole)

		hostHalls.GET("/products", pricingHandler.ListProducts)
		hostHalls.POST("/products", pricingHandler.CreateProduct)
		hostHalls.PATCH("/products/:productId", pricingHandler.UpdateProduct)
		hostHalls.DELETE("/products/:productId", pricingHandler.DeleteProduct)

		hostHalls.GET("/products/:productId/rates", pricingHandler.ListRates)
		hostHalls.POST("/products/:productId/rates", pricingHandler.CreateRate)
		hostHalls.PATCH("/products/:productId/rates/:rateId", pricingHandler.UpdateRate)
		hostHalls.DELETE("/products/:productId/rates/:rateId", pricingHandler.DeleteRate)

		hostHalls.GET("/addons", pricingHandler.ListAddons)
		hostHalls.POST("/addons", pricingHandler.CreateAddon)
		hostHalls.PATCH("/addons/:addonId", pricingHandler.UpdateAddon)
		hostHalls.DELETE("/addons/:addonId", pricingHandler.DeleteAddon)

		hostHalls.GET("/blocked-dates", pricingHandler.ListBlockedDates)
		hostHalls.POST("/blocked-dates", pricingHandler.CreateBlockedDate)
		hostHalls.DELETE("/blocked-dates/:blockId", pricingHandler.DeleteBlockedDate)

		hostHalls.GET("/media", mediaHandler.ListMedia)
		hostHalls.POST("/media", mediaHandler.CreateMedia)
		hostHalls.POST("/media/upload", mediaHandler.UploadMedia)
		hostHalls.POST("/media/:mediaId/tags", mediaHandler.TagMedia)
		hostHalls.DELETE("/media/:mediaId", mediaHandler.DeleteMedia)
	}

	// ========== Admin ==========
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg, authSvc))
	admin.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleSuperAdmin))
	{
		admin.GET("/halls", hallHandler.ListHalls)
		admin.POST("/halls", hallHandler.CreateHall)
		admin.GET("/halls/:id", hallHandler.GetHallByID)
		admin.PATCH("/halls/:id", hallHandler.UpdateHall)

		admin.GET("/halls/:id/roles", hallHandler.ListRoles)
		admin.POST("/halls/:id/roles", hallHandler.AssignRole)
		admin.DELETE("/halls/:id/roles/:userID/:role", hallHandler.RemoveRole)

		admin.GET("/host-applications", hostappHandler.ListApplications)
		admin.GET("/host-applications/:id", hostappHandler.GetApplication)
		admin.PATCH("/host-applications/:id/status", hostappHandler.UpdateStatus)

		admin.GET("/reports/halls", reportHandler.GetHallsReport)
		admin.GET("/reports/host-applications", reportHandler.GetApplicationsReport)
	}

	// ========== Audit Logs (SuperAdmin Only) ==========
	auditRoutes := api.Group("/admin/auditlogs")
	auditRoutes.Use(middleware.AuthMiddleware(cfg, authSvc))
	auditRoutes.Use(middleware.RequireRole(auth.RoleSuperAdmin))
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}
}
