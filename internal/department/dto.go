package department

import (
	"time"

	"github.com/frahmantamala/people-management/internal/core/common/validation"
)

type CreateDepartmentDTO struct {
	Name string `json:"name"`
}

func (d *CreateDepartmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateDepartmentDTO struct {
	Name string `json:"name"`
}

func (d *UpdateDepartmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}
