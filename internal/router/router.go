package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/auth"
	"github.com/keshav84652/workflow-management/internal/handler"
	mw "github.com/keshav84652/workflow-management/internal/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Client    *handler.ClientHandler
	Contact   *handler.ContactHandler
	Project   *handler.ProjectHandler
	Task      *handler.TaskHandler
	Admin     *handler.AdminHandler
	Checklist *handler.ChecklistHandler
	Portal    *handler.PortalHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
}

func New(jwtSecret string, logger *zap.Logger, pool *pgxpool.Pool, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery(logger))
	r.Use(mw.Logger(logger))
	r.Use(mw.Metrics)
	r.Use(mw.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/register", h.Auth.Register)

		// Staff routes
		r.Group(func(r chi.Router) {
			r.Use(auth.StaffMiddleware(jwtSecret))

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/users", h.Auth.Users)
			r.Get("/dashboard", h.Dashboard.Stats)

			// Clients
			r.Get("/clients", h.Client.List)
			r.Post("/clients", h.Client.Create)
			r.Get("/clients/{clientId}", h.Client.Get)
			r.Put("/clients/{clientId}", h.Client.Update)
			r.Post("/clients/{clientId}/deactivate", h.Client.Deactivate)
			r.Get("/clients/{clientId}/contacts", h.Client.Contacts)
			r.Post("/clients/{clientId}/contacts", h.Client.LinkContact)
			r.Delete("/clients/{clientId}/contacts/{contactId}", h.Client.UnlinkContact)
			r.Get("/clients/{clientId}/portal-users", h.Client.PortalUsers)
			r.Post("/clients/{clientId}/portal-users", h.Client.CreatePortalUser)
			r.Post("/portal-users/{portalUserId}/regenerate", h.Client.RegeneratePortalCode)
			r.Post("/portal-users/{portalUserId}/deactivate", h.Client.DeactivatePortalUser)
			r.Get("/clients/{clientId}/checklists", h.Client.Checklists)
			r.Post("/clients/{clientId}/checklists", h.Client.CreateChecklist)

			// Contacts
			r.Get("/contacts", h.Contact.List)
			r.Post("/contacts", h.Contact.Create)
			r.Get("/contacts/{contactId}", h.Contact.Get)
			r.Put("/contacts/{contactId}", h.Contact.Update)
			r.Delete("/contacts/{contactId}", h.Contact.Delete)
			r.Get("/contacts/{contactId}/clients", h.Contact.Clients)

			// Projects
			r.Get("/projects", h.Project.List)
			r.Post("/projects", h.Project.Create)
			r.Get("/projects/kanban", h.Project.Kanban)
			r.Get("/projects/{projectId}", h.Project.Get)
			r.Put("/projects/{projectId}", h.Project.Update)
			r.Put("/projects/{projectId}/status", h.Project.MoveStatus)
			r.Put("/projects/{projectId}/state", h.Project.SetState)
			r.Delete("/projects/{projectId}", h.Project.Archive)

			// Tasks
			r.Get("/tasks", h.Task.List)
			r.Post("/tasks", h.Task.Create)
			r.Get("/tasks/{taskId}", h.Task.Get)
			r.Put("/tasks/{taskId}", h.Task.Update)
			r.Put("/tasks/{taskId}/status", h.Task.SetStatus)
			r.Delete("/tasks/{taskId}", h.Task.Delete)

			// Checklists and documents
			r.Get("/checklists/{checklistId}", h.Checklist.Get)
			r.Put("/checklists/{checklistId}", h.Checklist.Update)
			r.Delete("/checklists/{checklistId}", h.Checklist.Delete)
			r.Post("/checklists/{checklistId}/items", h.Checklist.AddItem)
			r.Post("/checklists/{checklistId}/items/reorder", h.Checklist.ReorderItems)
			r.Put("/items/{itemId}/status", h.Checklist.SetItemStatus)
			r.Delete("/items/{itemId}", h.Checklist.DeleteItem)
			r.Post("/items/{itemId}/documents", h.Checklist.UploadDocument)
			r.Get("/documents/{docId}/download", h.Checklist.DownloadDocument)
			r.Delete("/documents/{docId}", h.Checklist.DeleteDocument)

			// Time tracking
			r.Get("/time-entries", h.Report.ListEntries)
			r.Post("/time-entries", h.Report.CreateEntry)
			r.Delete("/time-entries/{entryId}", h.Report.DeleteEntry)
			r.Get("/reports/time", h.Report.TimeReport)

			// Work type reads are open to all staff; writes are admin only
			r.Get("/work-types", h.Admin.ListWorkTypes)
			r.Get("/work-types/{workTypeId}", h.Admin.GetWorkType)
			r.Get("/work-types/{workTypeId}/statuses", h.Admin.ListStatuses)
			r.Get("/templates", h.Admin.ListTemplates)
			r.Get("/templates/{templateId}", h.Admin.GetTemplate)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Post("/work-types", h.Admin.CreateWorkType)
				r.Put("/work-types/{workTypeId}", h.Admin.UpdateWorkType)
				r.Post("/work-types/{workTypeId}/deactivate", h.Admin.DeactivateWorkType)
				r.Post("/work-types/{workTypeId}/statuses", h.Admin.CreateStatus)
				r.Post("/work-types/{workTypeId}/statuses/reorder", h.Admin.ReorderStatuses)
				r.Put("/statuses/{statusId}", h.Admin.UpdateStatus)
				r.Delete("/statuses/{statusId}", h.Admin.DeleteStatus)
				r.Post("/templates", h.Admin.CreateTemplate)
				r.Put("/templates/{templateId}", h.Admin.UpdateTemplate)
				r.Delete("/templates/{templateId}", h.Admin.DeleteTemplate)
			})
		})
	})

	// Client portal
	r.Route("/portal", func(r chi.Router) {
		r.Post("/login", h.Portal.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.PortalMiddleware(jwtSecret))

			r.Get("/checklists", h.Portal.Checklists)
			r.Put("/items/{itemId}/status", h.Portal.SetItemStatus)
			r.Post("/items/{itemId}/upload", h.Portal.Upload)
			r.Get("/documents/{docId}/download", h.Portal.Download)
		})
	})

	return r
}
