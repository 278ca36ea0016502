package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/frahmantamala/people-management/internal"
	userDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/user"
	"github.com/frahmantamala/people-management/internal/core/events"
)

// UpdateParams is the store-level partial update; nil fields are skipped.
type UpdateParams struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PhotoURL     *string
	DepartmentID *uuid.UUID
}

type RepositoryAPI interface {
	GetByID(id uuid.UUID) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Update(id uuid.UUID, params UpdateParams) (*userDatamodel.User, error)
	SoftDelete(id uuid.UUID) error
	RoleTypesFor(id uuid.UUID) ([]string, error)
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) GetByID(id uuid.UUID) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user := FromDataModel(model)
	if roleTypes, err := s.repo.RoleTypesFor(id); err == nil {
		user.RoleTypes = roleTypes
	}
	return user, nil
}

// Update applies a partial profile change. An email change to an address
// already held by another user is a conflict.
func (s *Service) Update(id uuid.UUID, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.IsEmpty() {
		return s.GetByID(id)
	}

	params := UpdateParams{PhotoURL: dto.PhotoURL}

	if dto.Name != nil {
		firstName, lastName := SplitName(*dto.Name)
		params.FirstName = &firstName
		params.LastName = &lastName
	}

	if dto.Email != nil {
		if existing, err := s.repo.GetByEmail(*dto.Email); err == nil && existing != nil && existing.ID != id {
			return nil, internal.ErrUserExists
		}
		params.Email = dto.Email
	}

	if dto.DepartmentID != nil {
		if *dto.DepartmentID == "" {
			params.DepartmentID = &uuid.Nil
		} else {
			deptID, err := uuid.Parse(*dto.DepartmentID)
			if err != nil {
				return nil, internal.NewValidationError("departmentId must be a valid uuid", internal.ErrCodeValidationFailed)
			}
			params.DepartmentID = &deptID
		}
	}

	model, err := s.repo.Update(id, params)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user profile updated", "user_id", id)

	user := FromDataModel(model)
	if roleTypes, err := s.repo.RoleTypesFor(id); err == nil {
		user.RoleTypes = roleTypes
	}
	return user, nil
}

// Delete marks the user deleted. The flag is what every read path filters
// on, so a deleted user's still-valid token stops authenticating at the
// next request.
func (s *Service) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	s.publish(events.NewUserDeletedEvent(id.String()))
	return nil
}

func (s *Service) publish(event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
