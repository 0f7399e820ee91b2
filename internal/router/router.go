package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/handler"
	"github.com/LazorAmorie/Masterkey.01/internal/middleware"
	"github.com/LazorAmorie/Masterkey.01/pkg/response"
)

func SetupRoutes(
	r chi.Router,
	authHandler *handler.AuthHandler,
	txHandler *handler.TransactionHandler,
	auth *middleware.AuthMiddleware,
	rdb *redis.Client,
	logger *zap.Logger,
) chi.Router {
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimiter(rdb, 100, time.Minute, time.Minute, "global"))

	r.Get("/health", authHandler.Health)

	r.Route("/api", func(api chi.Router) {
		// ---------------- Public ----------------
		api.Group(func(pub chi.Router) {
			pub.Use(middleware.RateLimiter(rdb, 10, 30*time.Second, time.Minute, "auth"))
			pub.Post("/auth/signup", authHandler.Signup)
			pub.Post("/auth/login", authHandler.Login)
		})

		// ---------------- Authenticated ----------------
		api.Group(func(priv chi.Router) {
			priv.Use(auth.Require())
			priv.Get("/auth/profile", authHandler.Profile)

			priv.Post("/transaction/send", txHandler.Send)
			priv.Get("/transaction/history", txHandler.History)
			priv.Get("/transaction/stats", txHandler.Stats)
			priv.Get("/transaction/{transactionId}", txHandler.Get)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, http.StatusNotFound, "Endpoint not found")
	})

	return r
}
