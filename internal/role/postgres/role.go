package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/people-management/internal"
	roleDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	"github.com/frahmantamala/people-management/internal/role"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll() ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	if err := r.db.Order("name ASC").Find(&roles).Error; err != nil {
		return nil, internal.NewDatabaseError("failed to list roles", err)
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(id uuid.UUID) (*roleDatamodel.Role, error) {
	var model roleDatamodel.Role
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRoleNotFound
		}
		return nil, internal.NewDatabaseError("failed to query role", err)
	}
	return &model, nil
}

func (r *RoleRepository) GetByName(name string) (*roleDatamodel.Role, error) {
	var model roleDatamodel.Role
	err := r.db.Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRoleNotFound
		}
		return nil, internal.NewDatabaseError("failed to query role", err)
	}
	return &model, nil
}

func (r *RoleRepository) Create(model *roleDatamodel.Role) error {
	if err := r.db.Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrRoleExists
		}
		return internal.NewDatabaseError("failed to create role", err)
	}
	return nil
}

func (r *RoleRepository) Update(model *roleDatamodel.Role) error {
	if err := r.db.Save(model).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrRoleExists
		}
		return internal.NewDatabaseError("failed to update role", err)
	}
	return nil
}

// Delete removes the role and its user assignments. The user_role rows go
// first so no orphaned link survives a partial failure.
func (r *RoleRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&roleDatamodel.UserRole{}).Error; err != nil {
			return internal.NewDatabaseError("failed to remove role assignments", err)
		}
		if err := tx.Where("id = ?", id).Delete(&roleDatamodel.Role{}).Error; err != nil {
			return internal.NewDatabaseError("failed to delete role", err)
		}
		return nil
	})
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
