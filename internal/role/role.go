package role

import (
	"time"

	"github.com/google/uuid"

	roleDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/role"
)

// Role is a named permission level drawn from the fixed role-type
// enumeration. Administrators manage roles; users are linked through
// user_role rows.
type Role struct {
	ID        uuid.UUID
	Name      string
	RoleType  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Role) ToResponse() RoleResponse {
	return RoleResponse{
		ID:        r.ID.String(),
		Name:      r.Name,
		RoleType:  r.RoleType,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:        r.ID,
		Name:      r.Name,
		RoleType:  r.RoleType,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromDataModel(m *roleDatamodel.Role) *Role {
	return &Role{
		ID:        m.ID,
		Name:      m.Name,
		RoleType:  m.RoleType,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
