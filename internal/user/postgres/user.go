package postgres

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/people-management/internal"
	roledm "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	userdm "github.com/frahmantamala/people-management/internal/core/datamodel/user"
	"github.com/frahmantamala/people-management/internal/user"
)

type UserRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserRepository(db *gorm.DB, logger *slog.Logger) user.RepositoryAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) GetByID(id uuid.UUID) (*userdm.User, error) {
	var model userdm.User
	err := r.db.
		Where("id = ? AND is_deleted = ?", id, false).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewDatabaseError("failed to query user", err)
	}
	return &model, nil
}

func (r *UserRepository) GetByEmail(email string) (*userdm.User, error) {
	var model userdm.User
	err := r.db.
		Where("email = ? AND is_deleted = ?", email, false).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewDatabaseError("failed to query user", err)
	}
	return &model, nil
}

// Update applies only the fields set in params. The soft-delete filter on
// the WHERE clause means an update against a deleted user reports NotFound.
func (r *UserRepository) Update(id uuid.UUID, params user.UpdateParams) (*userdm.User, error) {
	updates := map[string]interface{}{}
	if params.FirstName != nil {
		updates["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		updates["last_name"] = *params.LastName
	}
	if params.Email != nil {
		updates["email"] = *params.Email
	}
	if params.PhotoURL != nil {
		updates["photo_url"] = *params.PhotoURL
	}
	if params.DepartmentID != nil {
		if *params.DepartmentID == uuid.Nil {
			updates["department_id"] = nil
		} else {
			updates["department_id"] = *params.DepartmentID
		}
	}

	if len(updates) > 0 {
		result := r.db.Model(&userdm.User{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(updates)
		if result.Error != nil {
			if isDuplicateKey(result.Error) {
				return nil, internal.ErrUserExists
			}
			return nil, internal.NewDatabaseError("failed to update user", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, internal.ErrUserNotFound
		}
	}

	return r.GetByID(id)
}

// SoftDelete flips is_deleted; repeated deletes are not an error, and every
// read path filters the flag so the row never resurfaces.
func (r *UserRepository) SoftDelete(id uuid.UUID) error {
	result := r.db.Model(&userdm.User{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"is_active":  false,
		})
	if result.Error != nil {
		return internal.NewDatabaseError("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) RoleTypesFor(id uuid.UUID) ([]string, error) {
	var roleTypes []string
	err := r.db.
		Model(&roledm.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", id).
		Pluck("roles.role_type", &roleTypes).Error
	if err != nil {
		return nil, internal.NewDatabaseError("failed to load role types", err)
	}
	return roleTypes, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
