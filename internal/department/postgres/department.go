package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/people-management/internal"
	departmentDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/department"
	"github.com/frahmantamala/people-management/internal/department"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	if err := r.db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, internal.NewDatabaseError("failed to list departments", err)
	}
	return departments, nil
}

func (r *DepartmentRepository) GetByID(id uuid.UUID) (*departmentDatamodel.Department, error) {
	var model departmentDatamodel.Department
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, internal.NewDatabaseError("failed to query department", err)
	}
	return &model, nil
}

func (r *DepartmentRepository) GetByName(name string) (*departmentDatamodel.Department, error) {
	var model departmentDatamodel.Department
	err := r.db.Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, internal.NewDatabaseError("failed to query department", err)
	}
	return &model, nil
}

func (r *DepartmentRepository) Create(model *departmentDatamodel.Department) error {
	if err := r.db.Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDepartmentExists
		}
		return internal.NewDatabaseError("failed to create department", err)
	}
	return nil
}

func (r *DepartmentRepository) Update(model *departmentDatamodel.Department) error {
	if err := r.db.Save(model).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDepartmentExists
		}
		return internal.NewDatabaseError("failed to update department", err)
	}
	return nil
}

func (r *DepartmentRepository) Delete(id uuid.UUID) error {
	if err := r.db.Where("id = ?", id).Delete(&departmentDatamodel.Department{}).Error; err != nil {
		return internal.NewDatabaseError("failed to delete department", err)
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
