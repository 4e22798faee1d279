package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"institute-api/internal/config"
	"institute-api/internal/handler"
	"institute-api/internal/middleware"
	"institute-api/internal/model"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Employee     *handler.EmployeeHandler
	Student      *handler.StudentHandler
	Transaction  *handler.TransactionHandler
	Settings     *handler.SettingsHandler
	Notification *handler.NotificationHandler
	Trash        *handler.TrashHandler
	Activity     *handler.ActivityHandler
	Dashboard    *handler.DashboardHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Prometheus)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	staff := []string{model.RoleAdmin, model.RoleStaff}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin)).Post("/register", h.Auth.Register)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/employees", func(employees chi.Router) {
			employees.Use(authMiddleware.RequireAuth)
			employees.Get("/", h.Employee.List)
			employees.Get("/departments", h.Employee.Departments)
			employees.Get("/{id}", h.Employee.Get)
			employees.With(authMiddleware.RequireRoles(staff...)).Post("/", h.Employee.Create)
			employees.With(authMiddleware.RequireRoles(staff...)).Put("/{id}", h.Employee.Update)
			employees.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Employee.Delete)
		})

		api.Route("/students", func(students chi.Router) {
			students.Use(authMiddleware.RequireAuth)
			students.Get("/", h.Student.List)
			students.Get("/summary", h.Student.Summary)
			students.Get("/activities", h.Student.Activities)
			students.Get("/attendance", h.Student.Attendance)
			students.With(authMiddleware.RequireRoles(staff...)).Post("/attendance", h.Student.MarkAttendance)
			students.Get("/{id}", h.Student.Get)
			students.Get("/{id}/evaluation", h.Student.Evaluation)
			students.With(authMiddleware.RequireRoles(staff...)).Post("/", h.Student.Create)
			students.With(authMiddleware.RequireRoles(staff...)).Put("/{id}", h.Student.Update)
			students.With(authMiddleware.RequireRoles(staff...)).Delete("/{id}", h.Student.Delete)
		})

		api.Route("/transactions", func(transactions chi.Router) {
			transactions.Use(authMiddleware.RequireAuth)
			transactions.Get("/", h.Transaction.List)
			transactions.Get("/summary", h.Transaction.Summary)
			transactions.Get("/report", h.Transaction.Report)
			transactions.Get("/categories", h.Transaction.Categories)
			transactions.Get("/{id}", h.Transaction.Get)
			transactions.With(authMiddleware.RequireRoles(staff...)).Post("/", h.Transaction.Create)
			transactions.With(authMiddleware.RequireRoles(staff...)).Put("/{id}", h.Transaction.Update)
			transactions.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Transaction.Delete)
		})

		api.Route("/settings", func(settings chi.Router) {
			settings.Use(authMiddleware.RequireAuth)
			settings.Get("/", h.Settings.Get)
			settings.Patch("/", h.Settings.Patch)
			settings.Get("/profile", h.Settings.Profile)
			settings.Patch("/profile", h.Settings.UpdateProfile)
		})

		api.Route("/notifications", func(notifications chi.Router) {
			notifications.Use(authMiddleware.RequireAuth)
			notifications.Get("/", h.Notification.List)
			notifications.Patch("/{id}", h.Notification.Update)
			notifications.Post("/read-all", h.Notification.MarkAllRead)
		})

		api.Route("/trash", func(trash chi.Router) {
			trash.Use(authMiddleware.RequireAuth)
			trash.Get("/", h.Trash.List)
			trash.With(authMiddleware.RequireRoles(staff...)).Post("/{id}/restore", h.Trash.Restore)
			trash.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Trash.Purge)
		})

		api.Route("/activities", func(activities chi.Router) {
			activities.Use(authMiddleware.RequireAuth)
			activities.Get("/", h.Activity.List)
			activities.Post("/", h.Activity.Record)
		})

		api.With(authMiddleware.RequireAuth).Get("/dashboard/summary", h.Dashboard.Summary)
	})

	return r
}
