package department

import (
	"time"

	"github.com/google/uuid"

	departmentDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/department"
)

// Department is a named lookup entity referenced by user profiles.
type Department struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Department) ToResponse() DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID.String(),
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModel(m *departmentDatamodel.Department) *Department {
	return &Department{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
