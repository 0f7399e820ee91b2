package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/config"
	"github.com/LazorAmorie/Masterkey.01/internal/events"
	eventskafka "github.com/LazorAmorie/Masterkey.01/internal/events/kafka"
	"github.com/LazorAmorie/Masterkey.01/internal/handler"
	"github.com/LazorAmorie/Masterkey.01/internal/middleware"
	"github.com/LazorAmorie/Masterkey.01/internal/repository"
	"github.com/LazorAmorie/Masterkey.01/internal/router"
	"github.com/LazorAmorie/Masterkey.01/internal/usecase"
	"github.com/LazorAmorie/Masterkey.01/pkg/jwtutil"
)

// Server owns the HTTP listener and everything it needs to shut down cleanly.
type Server struct {
	http      *http.Server
	pool      *pgxpool.Pool
	rdb       *redis.Client
	publisher events.Publisher
	logger    *zap.Logger
}

func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	pool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, rate limiting will fail open", zap.Error(err))
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = eventskafka.NewPublisher(cfg.KafkaBrokers)
	}

	userRepo := repository.NewUserRepository(pool)
	txRepo := repository.NewTransactionRepository(pool)

	authUC := usecase.NewAuthUsecase(userRepo, cfg.DefaultWalletBalance, logger)
	txUC := usecase.NewTransactionUsecase(txRepo, publisher, logger)

	issuer := jwtutil.NewIssuer(cfg.JWTSecret, cfg.TokenExpiry)
	verifier := jwtutil.NewVerifier(cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(authUC, issuer, cfg.Environment, logger)
	txHandler := handler.NewTransactionHandler(txUC, logger)
	authMW := middleware.NewAuthMiddleware(verifier, userRepo, logger)

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler, txHandler, authMW, rdb, logger)

	return &Server{
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       time.Minute,
		},
		pool:      pool,
		rdb:       rdb,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if closer, ok := s.publisher.(interface{ Close() error }); ok {
		if cerr := closer.Close(); cerr != nil {
			s.logger.Warn("event publisher close failed", zap.Error(cerr))
		}
	}
	if rerr := s.rdb.Close(); rerr != nil {
		s.logger.Warn("redis close failed", zap.Error(rerr))
	}
	s.pool.Close()
	return err
}
