package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/taskora/taskora-backend-go/internal/config"
	"github.com/taskora/taskora-backend-go/internal/handler/http/middleware"
	"github.com/taskora/taskora-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Task         TaskHandler
	Staff        StaffHandler
	File         FileHandler
	Whiteboard   WhiteboardHandler
	Notification NotificationHandler
	Chat         ChatHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "taskora"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Get("/bootstrap-status", h.Auth.BootstrapStatus)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
				r.Put("/password", h.Auth.UpdatePassword)
			})
		})

		// Token-in-query endpoints; EventSource and <a download> cannot
		// send an Authorization header.
		r.Get("/notifications/stream", h.Notification.Stream)
		r.Get("/files/download", h.File.Download)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/navigation", h.Staff.Navigation)
			r.Get("/routes/resolve", h.Staff.ResolveRoute)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Staff.GetProfile)
				r.Put("/", h.Staff.UpdateProfile)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/me", h.Attendance.MyAttendance)

				// Manager and above
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/roster", h.Attendance.DailyRoster)
					r.Get("/summary", h.Attendance.DailySummary)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Get("/{id}", h.Task.Get)
				r.Put("/{id}", h.Task.Update)
				r.Patch("/{id}/move", h.Task.Move)
				r.Delete("/{id}", h.Task.Delete)
			})

			// Manager and above
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/staff", h.Staff.List)
			})

			// Super admin only
			r.Route("/admin/users", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Post("/", h.Staff.CreateUser)
				r.Delete("/{id}", h.Staff.DeleteUser)
				r.Patch("/{id}/active", h.Staff.SetUserActive)
			})

			r.Route("/files", func(r chi.Router) {
				r.Get("/", h.File.List)
				r.Post("/", h.File.Upload)
				r.Delete("/{id}", h.File.Delete)
				r.Get("/{id}/signed-url", h.File.SignedURL)
			})

			r.Route("/whiteboards", func(r chi.Router) {
				r.Get("/", h.Whiteboard.List)
				r.Post("/", h.Whiteboard.Create)
				r.Get("/{id}", h.Whiteboard.Get)
				r.Put("/{id}", h.Whiteboard.Save)
				r.Put("/{id}/autosave", h.Whiteboard.Autosave)
				r.Delete("/{id}", h.Whiteboard.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Patch("/read-all", h.Notification.MarkAllAsRead)
				r.Patch("/{id}/read", h.Notification.MarkAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/stream-token", h.Notification.GetStreamToken)
			})

			r.Post("/chat/completions", h.Chat.StreamCompletion)
		})
	})
	return r
}
