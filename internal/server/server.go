package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/eventhub/config"
	"github.com/farellandr/eventhub/internal/handlers"
	"github.com/farellandr/eventhub/internal/middleware"
	"github.com/farellandr/eventhub/internal/repository"
	"github.com/farellandr/eventhub/internal/service"
)

func Start(cfg *config.Config, logger *zap.Logger) error {
	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
	}()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewRouter(db, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter wires repositories, services and handlers over db.
func NewRouter(db *gorm.DB, logger *zap.Logger) *gin.Engine {
	userRepo := repository.NewUserRepoGorm(db)
	eventRepo := repository.NewEventRepoGorm(db)
	ticketRepo := repository.NewTicketRepoGorm(db)

	h := handlers.NewHandler(
		service.NewUserService(db, userRepo, eventRepo, logger, 0),
		service.NewEventService(db, eventRepo, userRepo, logger),
		service.NewTicketService(db, ticketRepo, eventRepo, userRepo, logger),
		logger,
	)

	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(logger),
		middleware.RecoveryMiddleware(logger),
		middleware.CORSMiddleware(),
	)
	setupRoutes(r, h)
	return r
}

func setupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.DELETE("/:user_id", h.DeleteUser)
		users.GET("/:user_id/tickets", h.ListUserTickets)
		users.GET("/:user_id/events", h.ListUserEvents)
	}

	r.POST("/login", h.Login)

	events := r.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.POST("", h.CreateEvent)
		events.GET("/:id", h.GetEvent)
		events.PATCH("/:id", h.PatchEvent)
		events.DELETE("/:id", h.DeleteEvent)
	}

	tickets := r.Group("/tickets")
	{
		tickets.GET("", h.ListTickets)
		tickets.POST("", h.CreateTicket)
		tickets.DELETE("/:id", h.DeleteTicket)
	}
}
