package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hwojcik/exagen/config"
	"github.com/hwojcik/exagen/database"
	_ "github.com/hwojcik/exagen/docs" // Swagger docs - auto-generated
	"github.com/hwojcik/exagen/internal/controller"
	"github.com/hwojcik/exagen/internal/logger"
	"github.com/hwojcik/exagen/internal/middleware"
	"github.com/hwojcik/exagen/internal/model"
	"github.com/hwojcik/exagen/internal/repository"
	"github.com/hwojcik/exagen/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exagen API
// @version 1.0
// @description Adaptive exam generation service: submit text, files or images, get topic templates and LLM-generated exams with per-topic difficulty tracking.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			middleware.NewAuthMiddleware,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTemplateRepository,
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewStatRepository,
			repository.NewTokenRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAuthService,
			service.NewDifficultyService,
			service.NewTemplateService,
			service.NewGeminiIngestService,
			service.NewExamService,
			service.NewSubmissionService,
		),

		// API controllers layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewTemplateController,
			controller.NewExamController,
			controller.NewIngestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	authCtrl *controller.AuthController,
	templateCtrl *controller.TemplateController,
	examCtrl *controller.ExamController,
	ingestCtrl *controller.IngestController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/register", authCtrl.Register)
		api.POST("/login", authCtrl.Login)
	}

	authorized := api.Group("")
	authorized.Use(authMW.RequireAuth())
	{
		authorized.POST("/logout", authCtrl.Logout)
		authorized.GET("/profile", authCtrl.Profile)

		templates := authorized.Group("/templates")
		templates.POST("", templateCtrl.Create)
		templates.GET("", templateCtrl.List)
		templates.GET("/:id", templateCtrl.Get)
		templates.PUT("/:id", templateCtrl.Update)
		templates.DELETE("/:id", templateCtrl.Delete)
		templates.GET("/:id/stats", templateCtrl.Stats)
		templates.POST("/:id/exams", examCtrl.CreateFromTemplate)
		templates.GET("/:id/exams", examCtrl.ListForTemplate)

		exams := authorized.Group("/exams")
		exams.GET("", examCtrl.ListAll)
		exams.GET("/:id", examCtrl.Get)
		exams.POST("/:id/questions/:qid/answer", examCtrl.SubmitAnswer)
		exams.POST("/:id/questions/:qid/clarify", examCtrl.Clarify)

		ingest := authorized.Group("/ingest")
		ingest.POST("/text", ingestCtrl.Text)
		ingest.POST("/file", ingestCtrl.File)
		ingest.POST("/image", ingestCtrl.Image)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exagen API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Template{},
		&model.Exam{},
		&model.Question{},
		&model.Stat{},
		&model.RevokedToken{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
