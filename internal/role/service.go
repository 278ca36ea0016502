package role

import (
	"log/slog"

	"github.com/google/uuid"

	roleDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/role"
)

type RepositoryAPI interface {
	GetAll() ([]*roleDatamodel.Role, error)
	GetByID(id uuid.UUID) (*roleDatamodel.Role, error)
	GetByName(name string) (*roleDatamodel.Role, error)
	Create(role *roleDatamodel.Role) error
	Update(role *roleDatamodel.Role) error
	Delete(id uuid.UUID) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*Role, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get roles from repository", "error", err)
		return nil, err
	}

	roles := make([]*Role, 0, len(models))
	for _, m := range models {
		roles = append(roles, FromDataModel(m))
	}
	return roles, nil
}

func (s *Service) GetByID(id uuid.UUID) (*Role, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}

func (s *Service) Create(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &roleDatamodel.Role{
		Name:     dto.Name,
		RoleType: dto.RoleType,
	}
	if err := s.repo.Create(model); err != nil {
		return nil, err
	}

	s.logger.Info("role created", "role_id", model.ID, "name", model.Name)
	return FromDataModel(model), nil
}

func (s *Service) Update(id uuid.UUID, dto UpdateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		model.Name = *dto.Name
	}
	if dto.RoleType != nil {
		model.RoleType = *dto.RoleType
	}

	if err := s.repo.Update(model); err != nil {
		return nil, err
	}

	s.logger.Info("role updated", "role_id", model.ID)
	return FromDataModel(model), nil
}

// Delete removes the role together with its user assignments.
func (s *Service) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("role deleted", "role_id", id)
	return nil
}
