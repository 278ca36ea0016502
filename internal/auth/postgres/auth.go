package postgres

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/auth"
	roledm "github.com/frahmantamala/people-management/internal/core/datamodel/role"
	userdm "github.com/frahmantamala/people-management/internal/core/datamodel/user"
)

// UserRepository backs the auth service with the users, roles and
// user_roles tables.
type UserRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserRepository(db *gorm.DB, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) GetByEmail(email string) (*auth.User, error) {
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

	return r.toAuthUser(&model), nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*auth.User, error) {
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

	return r.toAuthUser(&model), nil
}

func (r *UserRepository) GetPasswordHash(email string) (string, error) {
	var model userdm.User
	err := r.db.
		Select("password_hash").
		Where("email = ? AND is_deleted = ?", email, false).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", internal.ErrUserNotFound
		}
		return "", internal.NewDatabaseError("failed to query password hash", err)
	}

	return model.PasswordHash, nil
}

// Create inserts the user row and assigns the default role. The role
// assignment is best effort: a missing roles table or seed row must not
// fail registration.
func (r *UserRepository) Create(params auth.CreateUserParams) (*auth.User, error) {
	model := userdm.User{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PhotoURL:     params.PhotoURL,
		PasswordHash: params.PasswordHash,
		IsActive:     params.IsActive,
	}

	if err := r.db.Create(&model).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, internal.ErrUserExists
		}
		return nil, internal.NewDatabaseError("failed to create user", err)
	}

	roleTypes := r.assignDefaultRole(model.ID)

	user := r.toAuthUser(&model)
	user.RoleTypes = roleTypes
	return user, nil
}

func (r *UserRepository) assignDefaultRole(userID uuid.UUID) []string {
	var defaultRole roledm.Role
	err := r.db.Where("role_type = ?", auth.DefaultRoleType).First(&defaultRole).Error
	if err != nil {
		r.logger.Warn("default role missing, user created without role", "user_id", userID, "error", err)
		return nil
	}

	link := roledm.UserRole{UserID: userID, RoleID: defaultRole.ID}
	if err := r.db.Create(&link).Error; err != nil {
		r.logger.Warn("failed to assign default role", "user_id", userID, "error", err)
		return nil
	}

	return []string{defaultRole.RoleType}
}

func (r *UserRepository) toAuthUser(model *userdm.User) *auth.User {
	return &auth.User{
		ID:        model.ID,
		Email:     model.Email,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		PhotoURL:  model.PhotoURL,
		IsActive:  model.IsActive,
		RoleTypes: r.roleTypesFor(model.ID),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (r *UserRepository) roleTypesFor(userID uuid.UUID) []string {
	var roleTypes []string
	err := r.db.
		Model(&roledm.Role{}).
		Select("roles.role_type").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.role_type", &roleTypes).Error
	if err != nil {
		r.logger.Warn("failed to load role types", "user_id", userID, "error", err)
		return nil
	}
	return roleTypes
}

// isDuplicateKey covers both the translated gorm error and the raw driver
// messages from postgres and sqlite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
