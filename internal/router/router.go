package router

import (
	"time"

	"levscore/internal/config"
	"levscore/internal/handler"
	"levscore/internal/infra"
	"levscore/internal/middleware"
	"levscore/internal/model"
	"levscore/internal/repository"
	"levscore/internal/service"
	"levscore/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, trendCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	importLogRepo := repository.NewImportLogRepository(db)
	trendRepo := repository.NewTrendRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, rdb, cfg)
	membershipSvc := service.NewMembershipService(orgRepo, membershipRepo, invitationRepo, userRepo, dispatcher, cfg)
	scoreSvc := service.NewScoreService(supplierRepo)
	importSvc := service.NewImportService(supplierRepo, importLogRepo, scoreSvc)
	supplierSvc := service.NewSupplierService(supplierRepo, commentRepo, userRepo)
	trendSvc := service.NewTrendService(trendRepo, dispatcher)
	reportSvc := service.NewReportService(supplierRepo, mailer, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	orgsH := handler.NewOrgsHandler(membershipSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc, scoreSvc)
	commentsH := handler.NewCommentsHandler(supplierSvc)
	importsH := handler.NewImportsHandler(importSvc)
	trendsH := handler.NewTrendsHandler(trendSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, trendCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.GET("/google", authH.GoogleURL)
		auth.GET("/google/callback", authH.GoogleCallback)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		v1.POST("/orgs", orgsH.Create)
		v1.GET("/orgs", orgsH.ListMine)
		v1.POST("/invitations/accept", orgsH.AcceptInvite)

		// Trends are shared market data, not tenant-scoped
		v1.GET("/trends", trendsH.List)
		v1.POST("/trends/refresh", trendsH.Refresh)

		// Org-scoped routes — OrgMember resolves :orgId against the caller's
		// membership and enforces the role lists declared per group.
		anyMember := middleware.OrgMember(membershipRepo,
			model.RoleOwner, model.RoleAdmin, model.RoleMember, model.RoleViewer)
		canEdit := middleware.OrgMember(membershipRepo,
			model.RoleOwner, model.RoleAdmin, model.RoleMember)
		canManage := middleware.OrgMember(membershipRepo,
			model.RoleOwner, model.RoleAdmin)

		read := v1.Group("/orgs/:orgId", anyMember)
		{
			read.GET("/members", orgsH.ListMembers)
			read.GET("/suppliers", suppliersH.List)
			read.GET("/suppliers/:id", suppliersH.Get)
			read.GET("/suppliers/:id/comments", commentsH.List)
			read.GET("/suppliers/:id/scorecard", reportsH.Scorecard)
			read.GET("/imports", importsH.ListLogs)
		}

		edit := v1.Group("/orgs/:orgId", canEdit)
		{
			edit.PUT("/suppliers/:id/review", suppliersH.SetReviewStatus)
			edit.POST("/suppliers/:id/comments", commentsH.Create)
			edit.DELETE("/comments/:commentId", commentsH.Delete)
			edit.POST("/suppliers/:id/scorecard/email", reportsH.EmailScorecard)
		}

		manage := v1.Group("/orgs/:orgId", canManage)
		{
			manage.POST("/imports", importsH.Import)
			manage.POST("/imports/validate", importsH.Validate)
			manage.POST("/scores/recompute", suppliersH.Recompute)
			manage.POST("/invitations", orgsH.Invite)
			manage.GET("/invitations", orgsH.ListInvitations)
			manage.PATCH("/members/:userId", orgsH.ChangeRole)
			manage.DELETE("/members/:userId", orgsH.RemoveMember)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
