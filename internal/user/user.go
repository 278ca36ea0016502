package user

import (
	"time"

	"github.com/google/uuid"

	userDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/user"
)

// User is the profile-facing domain model. The password hash never leaves
// the package boundary.
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PhotoURL     string
	DepartmentID *uuid.UUID
	IsActive     bool
	RoleTypes    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) ToResponse() UserResponse {
	var departmentID *string
	if u.DepartmentID != nil {
		id := u.DepartmentID.String()
		departmentID = &id
	}
	return UserResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PhotoURL:     u.PhotoURL,
		DepartmentID: departmentID,
		IsActive:     u.IsActive,
		RoleTypes:    u.RoleTypes,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:           m.ID,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PhotoURL:     m.PhotoURL,
		DepartmentID: m.DepartmentID,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
