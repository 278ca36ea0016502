package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/core/common/validation"
)

// UpdateUserDTO carries a partial profile update. Nil fields are left
// untouched.
type UpdateUserDTO struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
	DepartmentID *string `json:"departmentId,omitempty"`
}

func (d *UpdateUserDTO) Validate() error {
	v := validation.NewValidator()

	if d.Email != nil {
		v.Field("email", *d.Email).Required().Email()
	}
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(255)
	}
	if d.DepartmentID != nil && *d.DepartmentID != "" {
		v.Field("departmentId", *d.DepartmentID).Custom(func(value interface{}) *internal.AppError {
			if s, ok := value.(string); ok {
				if _, err := uuid.Parse(s); err != nil {
					return internal.NewValidationFieldError("departmentId", "departmentId must be a valid uuid", internal.ErrCodeValidationFailed)
				}
			}
			return nil
		})
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// IsEmpty reports whether the update carries no changes at all.
func (d *UpdateUserDTO) IsEmpty() bool {
	return d.Name == nil && d.Email == nil && d.PhotoURL == nil && d.DepartmentID == nil
}

// SplitName breaks a display name into first and last at the first space.
func SplitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, " "); idx >= 0 {
		return name[:idx], strings.TrimSpace(name[idx+1:])
	}
	return name, ""
}

// UserResponse is the serialized profile shape; it never includes the
// password hash.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
	DepartmentID *string   `json:"departmentId,omitempty"`
	IsActive     bool      `json:"isActive"`
	RoleTypes    []string  `json:"roleTypes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
