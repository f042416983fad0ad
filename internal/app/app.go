package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gamepedia/community-service/config"
	"github.com/gamepedia/community-service/internal/controller"
	circuitbreaker "github.com/gamepedia/community-service/internal/infrastructure/circuit-breaker"
	identityprovider "github.com/gamepedia/community-service/internal/infrastructure/identity-provider"
	"github.com/gamepedia/community-service/internal/infrastructure/mailer"
	objectstorage "github.com/gamepedia/community-service/internal/infrastructure/object-storage"
	"github.com/gamepedia/community-service/internal/infrastructure/tracing"
	appmiddleware "github.com/gamepedia/community-service/internal/middleware"
	"github.com/gamepedia/community-service/internal/repository"
	"github.com/gamepedia/community-service/internal/service"
	"github.com/gamepedia/community-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type App struct {
	DB            *sqlx.DB
	Config        *config.Config
	KafkaProducer *kafka.Conn
	Server        *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	tracer := traceProvider.Tracer("community-service")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")
	g.Use(appmiddleware.Logger)

	checkLogin := appmiddleware.CheckLogin(app.Config.JWTSecret)
	checkAdmin := appmiddleware.CheckAdmin()

	storage := objectstorage.CreateHTTPObjectStorage(app.Config.StorageConfig)
	smtpMailer := mailer.CreateSMTPMailer(app.Config.SMTPConfig)
	kakaoBreaker := circuitbreaker.CreateCircuitBreaker("kakao")
	kakaoProvider := identityprovider.CreateKakaoIdentityProvider(app.Config.KakaoConfig, kakaoBreaker)
	publisher := service.CreateKafkaEventPublisher(app.KafkaProducer)

	accountRepo := repository.CreateAccountRepository(app.DB)
	gameRepo := repository.CreateGameRepository(app.DB)
	adminRepo := repository.CreateAdminRepository(app.DB)
	postRepo := repository.CreatePostRepository(app.DB)
	commentRepo := repository.CreateCommentRepository(app.DB)
	notificationRepo := repository.CreateNotificationRepository(app.DB)

	accountSvc := service.CreateAccountService(accountRepo, kakaoProvider, storage, smtpMailer, publisher, app.Config.JWTSecret)
	gameSvc := service.CreateGameService(gameRepo, storage)
	adminSvc := service.CreateAdminService(adminRepo, storage, publisher)
	postSvc := service.CreatePostService(postRepo, storage)
	commentSvc := service.CreateCommentService(commentRepo, notificationRepo)

	controller.CreateAccountController(g, accountSvc, checkLogin)
	controller.CreateGameController(g, gameSvc, checkLogin)
	controller.CreateAdminController(g, adminSvc, checkLogin, checkAdmin)
	controller.CreatePostController(g, postSvc, checkLogin)
	controller.CreateCommentController(g, commentSvc, checkLogin)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(
			time.Hour,
		),
		gocron.NewTask(
			accountSvc.PurgeExpiredEmailCodes,
			context.Background(),
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule email code purge")
	}

	scheduler.Start()
	defer scheduler.Shutdown()

	app.Server = e

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
