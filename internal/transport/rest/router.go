package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/people-management/internal/auth"
	"github.com/frahmantamala/people-management/internal/department"
	"github.com/frahmantamala/people-management/internal/role"
	"github.com/frahmantamala/people-management/internal/transport/middleware"
	"github.com/frahmantamala/people-management/internal/transport/swagger"
	"github.com/frahmantamala/people-management/internal/user"
)

// RouterDeps collects the handlers the router mounts. Nil handlers skip
// their route group, which keeps partial wiring possible in tests.
type RouterDeps struct {
	DB                *sql.DB
	AuthHandler       *auth.Handler
	Guard             *auth.Guard
	UserHandler       *user.Handler
	RoleHandler       *role.Handler
	DepartmentHandler *department.Handler
	APIPrefix         string
	Logger            *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	if deps.APIPrefix == "" {
		deps.APIPrefix = "/api/v1"
	}

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route(deps.APIPrefix, func(r chi.Router) {
		if deps.DB != nil {
			healthHandler := NewHealthHandler(deps.DB)
			r.Get("/health", healthHandler.healthCheckHandler)
			r.Get("/ping", healthHandler.pingHandler)
		}

		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", deps.AuthHandler.Register)
				sr.Post("/login", deps.AuthHandler.Login)
				sr.Get("/google", deps.AuthHandler.GoogleRedirect)
				sr.Get("/google/callback", deps.AuthHandler.GoogleCallback)
			})

			// Everything below requires a valid bearer token.
			r.Group(func(pr chi.Router) {
				pr.Use(deps.AuthHandler.AuthMiddleware)

				if deps.UserHandler != nil {
					pr.Route("/users", func(ur chi.Router) {
						ur.Get("/me", deps.UserHandler.GetCurrentUser)
						ur.Put("/me", deps.UserHandler.UpdateCurrentUser)
						ur.Delete("/me", deps.UserHandler.DeleteCurrentUser)
						ur.Get("/{id}", deps.UserHandler.GetUser)
						ur.Put("/{id}", deps.UserHandler.UpdateUser)
					})
				}

				if deps.Guard != nil {
					pr.Group(func(ar chi.Router) {
						ar.Use(deps.Guard.RequireAdmin())

						if deps.RoleHandler != nil {
							ar.Route("/roles", func(rr chi.Router) {
								rr.Get("/", deps.RoleHandler.ListRoles)
								rr.Post("/", deps.RoleHandler.CreateRole)
								rr.Get("/{id}", deps.RoleHandler.GetRole)
								rr.Put("/{id}", deps.RoleHandler.UpdateRole)
								rr.Delete("/{id}", deps.RoleHandler.DeleteRole)
							})
						}

						if deps.DepartmentHandler != nil {
							// Path spelling preserved from the original API surface.
							ar.Route("/departaments", func(dr chi.Router) {
								dr.Get("/", deps.DepartmentHandler.ListDepartments)
								dr.Post("/", deps.DepartmentHandler.CreateDepartment)
								dr.Get("/{id}", deps.DepartmentHandler.GetDepartment)
								dr.Put("/{id}", deps.DepartmentHandler.UpdateDepartment)
								dr.Delete("/{id}", deps.DepartmentHandler.DeleteDepartment)
							})
						}
					})
				}
			})
		}
	})
}
