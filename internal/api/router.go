package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/blog-backend/internal/api/handlers"
	"github.com/baharkarakas/blog-backend/internal/config"
	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/middleware"
	"github.com/baharkarakas/blog-backend/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	Log     *slog.Logger
	Tokens  middleware.TokenVerifier
	UserSvc *services.UserService
	BlogSvc *services.BlogService
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	authH := handlers.NewAuthHandler(d.UserSvc)
	blogH := handlers.NewBlogHandler(d.BlogSvc)
	guard := middleware.NewAuthMiddleware(d.Tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.AccessLog(log), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// ---------- auth ----------
	r.Post("/signup", authH.Signup)
	r.Post("/login", authH.Login)

	// ---------- public reads ----------
	r.With(guard.Optional).Get("/blogs", blogH.List)
	r.Get("/blogs/{id}", blogH.Get)

	// ---------- authenticated ----------
	r.Group(func(r chi.Router) {
		r.Use(guard.Require)
		r.Post("/blogs", blogH.Create)
		r.Put("/blogs/{id}/state", blogH.SetState)
		r.Put("/blogs/{id}", blogH.Edit)
		r.Delete("/blogs/{id}", blogH.Delete)
		r.Get("/user/blogs", blogH.Mine)
	})

	return r
}
