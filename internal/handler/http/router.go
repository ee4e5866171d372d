package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/rakitahr/hrms-backend-go/internal/config"
	"github.com/rakitahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	leaveHandler LeaveHandler,
	rosterHandler RosterHandler,
	payrollHandler PayrollHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
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
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Token-based approval: unauthenticated, the opaque token plus the
		// employee's NID stand in for credentials.
		r.Route("/leave/approval/{stage}", func(r chi.Router) {
			r.Get("/", leaveHandler.GetByToken)
			r.Post("/", leaveHandler.DecideByToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.GetMyRequests)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Put("/{id}", leaveHandler.EditRequest)
				r.Post("/{id}/supervisor-decision", leaveHandler.SupervisorDecide)
				r.Post("/{id}/final-decision", leaveHandler.FinalDecide)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", leaveHandler.ListRequests)
					r.Delete("/{id}", leaveHandler.DeleteRequest)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkRead)
			})

			r.Route("/roster", func(r chi.Router) {
				r.Get("/{employeeID}", rosterHandler.MonthView)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", rosterHandler.UpsertEntry)
					r.Post("/apply-pattern", rosterHandler.ApplyPattern)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Get("/{id}", employeeHandler.Get)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Deactivate)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/records", payrollHandler.ListRecords)
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/process-all", payrollHandler.ProcessAll)
					r.Get("/records/{employeeID}", payrollHandler.GetRecord)
					r.Patch("/records/{employeeID}/inputs", payrollHandler.UpdateInputs)
					r.Post("/records/{employeeID}/reset", payrollHandler.Reset)
					r.Delete("/records/{id}", payrollHandler.DeleteRecord)

					r.Route("/settings", func(r chi.Router) {
						r.Get("/", payrollHandler.GetSettings)
						r.Put("/", payrollHandler.UpdateSettings)
					})
				})
			})
		})
	})

	return r
}
