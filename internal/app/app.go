package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mochytk/INF225-Informagicos/internal/config"
	"github.com/Mochytk/INF225-Informagicos/internal/controller"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/service"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
	"github.com/Mochytk/INF225-Informagicos/pkg/configwatcher"
	"github.com/Mochytk/INF225-Informagicos/pkg/database"
	"github.com/Mochytk/INF225-Informagicos/pkg/logger"
	"github.com/Mochytk/INF225-Informagicos/pkg/monitoring"
	"github.com/Mochytk/INF225-Informagicos/pkg/security"
	"github.com/Mochytk/INF225-Informagicos/pkg/tracing"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	origins         *security.OriginList
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	exam     *repository.ExamRepository
	question *repository.QuestionRepository
	tag      *repository.TagRepository
	result   *repository.ResultRepository
	summary  *repository.SummaryRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	exam       *service.ExamService
	tag        *service.TagService
	submission *service.SubmissionService
	summary    *service.SummaryService
	review     *service.ReviewService
}

type controllers struct {
	auth       *controller.AuthController
	exam       *controller.ExamController
	tag        *controller.TagController
	submission *controller.SubmissionController
	summary    *controller.SummaryController
	review     *controller.ReviewController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		exam:     repository.NewExamRepository(db),
		question: repository.NewQuestionRepository(db),
		tag:      repository.NewTagRepository(db),
		result:   repository.NewResultRepository(db),
		summary:  repository.NewSummaryRepository(db),
	}
}

func summaryCache(cfg *config.Config, rdb *redis.Client) service.SummaryCache {
	if rdb == nil {
		return service.NoopSummaryCache{}
	}
	return service.NewRedisSummaryCache(rdb, time.Duration(cfg.Redis.SummaryTTLSeconds)*time.Second)
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	cache := summaryCache(cfg, rdb)

	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.tag = service.NewTagService(repos.tag)
	s.exam = service.NewExamService(repos.exam, repos.question, repos.tag, s.storage, cache)
	s.submission = service.NewSubmissionService(repos.exam, repos.question, repos.result, cache)
	s.summary = service.NewSummaryService(repos.exam, repos.question, repos.result, repos.summary, cache)
	s.review = service.NewReviewService(repos.exam, repos.question, repos.result, cache)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		exam:       controller.NewExamController(s.exam, a.Config),
		tag:        controller.NewTagController(s.tag),
		submission: controller.NewSubmissionController(s.submission),
		summary:    controller.NewSummaryController(s.summary),
		review:     controller.NewReviewController(s.review),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginList(cfg.CORS.AllowedOrigins)
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		a.origins.Store(newCfg.CORS.AllowedOrigins)
	})

	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires repositories, services and controllers on an open database and builds the router.
// rdb may be nil, in which case exam summaries are not cached.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// NewApp initializes logging, the database, Redis and tracing from cfg, then calls New.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, summaries will not be cached", zap.Error(err))
			rdb = nil
		}
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app := New(cfg, db, rdb)
	app.tracer = tp
	app.RegisterConfigCallback(logger.SetLevel)
	return app
}

func (a *App) watchConfig(stop <-chan struct{}) {
	if a.Config.FilePath == "" {
		return
	}
	go func() {
		if err := configwatcher.WatchConfig(a.Config.FilePath, a.applyConfig, stop); err != nil {
			logger.Log.Error("config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	stop := make(chan struct{})
	a.watchConfig(stop)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
