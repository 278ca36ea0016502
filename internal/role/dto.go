package role

import (
	"time"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/auth"
	"github.com/frahmantamala/people-management/internal/core/common/validation"
)

var allowedRoleTypes = []string{
	auth.RoleSuperAdmin,
	auth.RoleAdmin,
	auth.RoleModerator,
	auth.RoleManager,
	auth.RoleUser,
	auth.RoleGuest,
}

type CreateRoleDTO struct {
	Name     string `json:"name"`
	RoleType string `json:"roleType"`
}

func (d *CreateRoleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("roleType", d.RoleType).Required().OneOf(allowedRoleTypes, internal.ErrCodeInvalidRoleType)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateRoleDTO struct {
	Name     *string `json:"name,omitempty"`
	RoleType *string `json:"roleType,omitempty"`
}

func (d *UpdateRoleDTO) Validate() error {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(255)
	}
	if d.RoleType != nil {
		v.Field("roleType", *d.RoleType).Required().OneOf(allowedRoleTypes, internal.ErrCodeInvalidRoleType)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RoleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RoleType  string    `json:"roleType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}
