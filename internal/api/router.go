package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/accesscast/studio-admin/docs"
	"github.com/accesscast/studio-admin/internal/api/handler"
	"github.com/accesscast/studio-admin/internal/api/middleware"
	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/service"
	"github.com/accesscast/studio-admin/internal/infrastructure/config"
	mongodb "github.com/accesscast/studio-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/accesscast/studio-admin/internal/infrastructure/db/redis"
	"github.com/accesscast/studio-admin/internal/infrastructure/jobs"
)

// Services exposes the long-lived services the serve command needs beyond
// request handling: the layout service must flush dirty sessions at shutdown
// and the allowlist matcher must be primed at startup.
type Services struct {
	Layout    *service.LayoutService
	Allowlist *service.AllowlistService
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, runner *jobs.Runner, log zerolog.Logger) (*echo.Echo, *Services) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("studio"))
	e.Use(requestLogger(log))

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	prefsRepo := mongodb.NewPreferencesRepository(db)
	movieRepo := mongodb.NewMovieRepository(db)
	distributorRepo := mongodb.NewDistributorRepository(db)
	personnelRepo := mongodb.NewPersonnelRepository(db)
	assetRepo := mongodb.NewAssetRepository(db)
	guidelineRepo := mongodb.NewGuidelineRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	allowlistRepo := mongodb.NewAllowlistRepository(db)
	exporter := mongodb.NewCollectionExporter(db)
	cache := redisdb.NewContentCache(rdb)

	// --- Services ---
	registry := domain.DefaultRegistry()
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	layoutService := service.NewLayoutService(registry, prefsRepo, cfg.Layout.SaveDebounce, log)
	movieService := service.NewMovieService(movieRepo, log)
	distributorService := service.NewDistributorService(distributorRepo, log)
	personnelService := service.NewPersonnelService(personnelRepo, log)
	assetService := service.NewAssetService(assetRepo, movieRepo, log)
	guidelineService := service.NewGuidelineService(guidelineRepo, log)
	boardService := service.NewBoardService(taskRepo, log)
	backupService := service.NewBackupService(exporter, runner, cfg.Backup.Dir, cfg.Backup.Keep, log)
	allowlistService := service.NewAllowlistService(allowlistRepo, cfg.Allowlist.Enforce, log)

	dashboardService := service.NewDashboardService(layoutService, registry, cache, log)
	service.RegisterDefaultProviders(dashboardService, service.ProviderDeps{
		Users:        authRepo,
		Movies:       movieRepo,
		Distributors: distributorRepo,
		Personnel:    personnelRepo,
		Assets:       assetRepo,
		Guidelines:   guidelineRepo,
		Tasks:        taskRepo,
		Backups:      backupService,
		Allowlist:    allowlistService,
	})

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	layoutHandler := handler.NewLayoutHandler(layoutService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	movieHandler := handler.NewMovieHandler(movieService)
	distributorHandler := handler.NewDistributorHandler(distributorService)
	personnelHandler := handler.NewPersonnelHandler(personnelService)
	assetHandler := handler.NewAssetHandler(assetService)
	guidelineHandler := handler.NewGuidelineHandler(guidelineService)
	boardHandler := handler.NewBoardHandler(boardService)
	settingsHandler := handler.NewSettingsHandler(backupService, allowlistService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	authMW := middleware.Auth(cfg.JWTSecret)
	writeMW := middleware.RBAC(domain.RoleAdmin, domain.RoleEditor)
	adminMW := middleware.RBAC(domain.RoleAdmin)

	// --- Probes and tooling (never allowlisted, never authed) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Application routes, behind the IP allow-list ---
	app := e.Group("", middleware.Allowlist(allowlistService, log))

	app.POST("/auth/login", authHandler.Login)
	app.POST("/auth/register", authHandler.Register, authMW, adminMW)

	v1 := app.Group("/v1", authMW)

	// Dashboard and layout: every authenticated role.
	v1.GET("/dashboard", dashboardHandler.Render)
	v1.GET("/dashboard/cards", dashboardHandler.Catalog)
	v1.GET("/dashboard/layout", layoutHandler.Get)
	v1.PUT("/dashboard/layout", layoutHandler.Put)
	v1.POST("/dashboard/layout/reorder", layoutHandler.Reorder)
	v1.POST("/dashboard/layout/cards/:id/move", layoutHandler.Move)
	v1.POST("/dashboard/layout/cards/:id/visibility", layoutHandler.ToggleVisibility)
	v1.POST("/dashboard/layout/cards/:id/collapse", layoutHandler.ToggleCollapse)
	v1.POST("/dashboard/layout/reset", layoutHandler.Reset)
	v1.POST("/dashboard/layout/save", layoutHandler.Save)

	// Movies.
	v1.GET("/movies", movieHandler.List)
	v1.GET("/movies/:id", movieHandler.Get)
	v1.POST("/movies", movieHandler.Create, writeMW)
	v1.PUT("/movies/:id", movieHandler.Update, writeMW)
	v1.DELETE("/movies/:id", movieHandler.Delete, writeMW)

	// Distributors.
	v1.GET("/distributors", distributorHandler.List)
	v1.GET("/distributors/:id", distributorHandler.Get)
	v1.POST("/distributors", distributorHandler.Create, writeMW)
	v1.PUT("/distributors/:id", distributorHandler.Update, writeMW)
	v1.DELETE("/distributors/:id", distributorHandler.Delete, writeMW)

	// Personnel.
	v1.GET("/personnel", personnelHandler.List)
	v1.GET("/personnel/:id", personnelHandler.Get)
	v1.POST("/personnel", personnelHandler.Create, writeMW)
	v1.PUT("/personnel/:id", personnelHandler.Update, writeMW)
	v1.DELETE("/personnel/:id", personnelHandler.Delete, writeMW)

	// Media assets.
	v1.GET("/assets", assetHandler.List)
	v1.GET("/assets/:id", assetHandler.Get)
	v1.POST("/assets", assetHandler.Create, writeMW)
	v1.PUT("/assets/:id", assetHandler.Update, writeMW)
	v1.DELETE("/assets/:id", assetHandler.Delete, writeMW)

	// Guidelines.
	v1.GET("/guidelines", guidelineHandler.List)
	v1.GET("/guidelines/:id", guidelineHandler.Get)
	v1.POST("/guidelines", guidelineHandler.Create, writeMW)
	v1.PUT("/guidelines/:id", guidelineHandler.Update, writeMW)
	v1.DELETE("/guidelines/:id", guidelineHandler.Delete, writeMW)

	// Production board.
	v1.GET("/board", boardHandler.GetBoard)
	v1.GET("/tasks/:id", boardHandler.GetTask)
	v1.POST("/tasks", boardHandler.CreateTask, writeMW)
	v1.PUT("/tasks/:id", boardHandler.UpdateTask, writeMW)
	v1.DELETE("/tasks/:id", boardHandler.DeleteTask, writeMW)
	v1.POST("/tasks/:id/stage", boardHandler.MoveTask, writeMW)

	// Settings (admin only).
	settings := v1.Group("/settings", adminMW)
	settings.POST("/backups", settingsHandler.TriggerBackup)
	settings.GET("/backups", settingsHandler.ListBackups)
	settings.GET("/allowlist", settingsHandler.GetAllowlist)
	settings.PUT("/allowlist", settingsHandler.ReplaceAllowlist)

	return e, &Services{
		Layout:    layoutService,
		Allowlist: allowlistService,
	}
}

// requestLogger emits one structured log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
