package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"focus-backend/internal/handlers"
	"focus-backend/internal/middleware"
)

// New builds the HTTP handler. stop releases the rate limiters' cleanup
// goroutines and should be called on shutdown.
func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	studySessionHandler *handlers.StudySessionHandler,
	gamificationHandler *handlers.GamificationHandler,
	userHandler *handlers.UserHandler,
	goalHandler *handlers.GoalHandler,
	wsHandler http.HandlerFunc,
	frontendURL string,
) (handler http.Handler, stop func()) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	// Spins and purchases (60 req/min per IP)
	gameLimiter := middleware.NewRateLimiter(60, time.Minute)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Auth Routes ────
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	// ──── Focus Sessions ────
	r.Route("/sessions", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Post("/complete", studySessionHandler.Complete)
		r.Get("/weekly-stats", studySessionHandler.WeeklyStats)
	})

	// ──── Wheel & Shop ────
	r.Route("/gamification", func(r chi.Router) {
		r.Get("/catalog", gamificationHandler.Catalog) // Public

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/inventory", gamificationHandler.Inventory)
			r.With(gameLimiter.Middleware).Post("/spin", gamificationHandler.Spin)
			r.With(gameLimiter.Middleware).Post("/buy", gamificationHandler.Buy)
		})
	})

	// ──── Profile & Weekly Review ────
	r.Route("/users", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Post("/onboarding", userHandler.Onboarding)
		r.Get("/my-profile", userHandler.MyProfile)
		r.Get("/check-weekly-review", userHandler.CheckWeeklyReview)
		r.Post("/update-plan", userHandler.UpdatePlan)
	})

	// ──── Goals ────
	r.Route("/goals", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Get("/", goalHandler.List)
		r.Post("/", goalHandler.Create)
		r.Put("/{id}", goalHandler.Update)
		r.Delete("/{id}", goalHandler.Delete)
	})

	// WebSocket authenticates with ?token= instead of the header.
	if wsHandler != nil {
		r.Get("/ws", wsHandler)
	}

	stop = func() {
		authLimiter.Stop()
		gameLimiter.Stop()
	}
	return r, stop
}
