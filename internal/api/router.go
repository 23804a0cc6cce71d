package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JibinB02/pehlahath/internal/api/handlers"
	"github.com/JibinB02/pehlahath/internal/api/middleware"
	"github.com/JibinB02/pehlahath/internal/infrastructure/auth"
	"github.com/JibinB02/pehlahath/internal/usecase"
)

// NewRouter wires the HTTP surface. Task listing and stats are public;
// everything mutating requires a verified token, and task creation and
// cancellation additionally require the authority role.
func NewRouter(
	taskService *usecase.TaskService,
	authService *usecase.AuthService,
	reportService *usecase.ReportService,
	resourceService *usecase.ResourceService,
	tokens *auth.JWTManager,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	taskHandler := handlers.NewTaskHandler(taskService)
	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService)
	resourceHandler := handlers.NewResourceHandler(resourceService)

	authenticate := middleware.Authenticate(tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/verify", authHandler.VerifyEmail)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/profile", authHandler.GetProfile)
				r.Put("/profile", authHandler.UpdateProfile)
			})
		})

		r.Route("/volunteers", func(r chi.Router) {
			r.Get("/tasks", taskHandler.ListTasks)
			r.Get("/stats", taskHandler.GetStats)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/assign", taskHandler.AssignVolunteer)
				r.Post("/complete", taskHandler.CompleteTask)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuthority)
					r.Post("/tasks", taskHandler.CreateTask)
					r.Post("/cancel", taskHandler.CancelTask)
				})
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportHandler.ListReports)
			r.Get("/{id}", reportHandler.GetReport)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", reportHandler.SubmitReport)
			})
		})

		r.Route("/resources", func(r chi.Router) {
			r.Get("/", resourceHandler.ListResources)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", resourceHandler.CreateRequest)
				r.Get("/mine", resourceHandler.ListMyRequests)
				r.Put("/{id}/status", resourceHandler.UpdateStatus)
				r.Put("/{id}/allocate", resourceHandler.Allocate)
				r.Delete("/{id}", resourceHandler.DeleteAllocated)
			})
		})
	})

	return r
}
