package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kidsense/sensory-assessment-api/api/swagger"
	"github.com/kidsense/sensory-assessment-api/internal/handler"
	"github.com/kidsense/sensory-assessment-api/internal/middleware"
	"github.com/kidsense/sensory-assessment-api/internal/repository"
	"github.com/kidsense/sensory-assessment-api/internal/service"
	"github.com/kidsense/sensory-assessment-api/pkg/cache"
	"github.com/kidsense/sensory-assessment-api/pkg/config"
	"github.com/kidsense/sensory-assessment-api/pkg/database"
	"github.com/kidsense/sensory-assessment-api/pkg/logger"
	corsmiddleware "github.com/kidsense/sensory-assessment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kidsense/sensory-assessment-api/pkg/middleware/requestid"
)

// @title Sensory Assessment API
// @version 1.0.0
// @description CRUD backend for sensory-assessment tracking
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, assessment cache disabled", "error", err)
			redisClient = nil
		}
	}

	var (
		userSvc       *service.UserService
		studentSvc    *service.StudentService
		assessmentSvc *service.AssessmentService
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, dbErr := database.NewPostgres(cfg.Database)
		if dbErr != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", dbErr)
		}
		userSvc = service.NewUserService(repository.NewUserRepository(db), validate, logr)
		studentSvc = service.NewStudentService(repository.NewStudentRepository(db), validate, logr)
		assessmentSvc = service.NewAssessmentService(repository.NewAssessmentRepository(db), redisClient, cfg.Cache.TTL, validate, logr)
	default:
		userSvc = service.NewUserService(repository.NewMemoryUserRepository(), validate, logr)
		studentSvc = service.NewStudentService(repository.NewMemoryStudentRepository(), validate, logr)
		assessmentSvc = service.NewAssessmentService(repository.NewMemoryAssessmentRepository(), redisClient, cfg.Cache.TTL, validate, logr)
	}

	scoringSvc := service.NewScoringService(validate, metricsSvc, logr)
	exportSvc := service.NewExportService(logr)

	userHandler := handler.NewUserHandler(userSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	assessmentHandler := handler.NewAssessmentHandler(assessmentSvc, scoringSvc, exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/users", userHandler.Create)
	api.GET("/users/firebase/:firebaseUid", userHandler.GetByFirebaseUID)
	api.POST("/students", studentHandler.Create)
	api.GET("/students/:id", studentHandler.Get)
	api.POST("/assessments", assessmentHandler.Create)
	api.POST("/assessments/calculate-score", assessmentHandler.CalculateScore)
	api.GET("/assessments/:id", assessmentHandler.Get)
	api.GET("/assessments/teacher/:teacherId", assessmentHandler.ListByTeacher)
	api.PUT("/assessments/:id", assessmentHandler.Update)
	if cfg.Exports.Enabled {
		api.GET("/assessments/:id/export", assessmentHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "storage", cfg.Storage.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
