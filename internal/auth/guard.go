package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/transport"
)

// Guard enforces role-based access on route groups. It reads the roles the
// auth middleware attached to the request context, so it must be mounted
// after AuthMiddleware.
type Guard struct {
	*transport.BaseHandler
}

func NewGuard(logger *slog.Logger) *Guard {
	return &Guard{BaseHandler: transport.NewBaseHandler(logger)}
}

// RequireRoles allows the request through when the user holds at least one
// of the given role types.
func (g *Guard) RequireRoles(roleTypes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				g.Logger.Warn("authorization check without authenticated user", "path", r.URL.Path)
				g.WriteAppError(w, internal.ErrNoToken)
				return
			}

			if !user.HasAnyRole(roleTypes...) {
				g.Logger.Warn("access denied: insufficient role",
					"user_id", user.ID,
					"required_roles", roleTypes,
					"user_roles", user.RoleTypes)
				g.WriteAppError(w, internal.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for the admin-only route groups.
func (g *Guard) RequireAdmin() func(http.Handler) http.Handler {
	return g.RequireRoles(RoleAdmin, RoleSuperAdmin)
}
