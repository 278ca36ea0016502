package department

import (
	"log/slog"

	"github.com/google/uuid"

	departmentDatamodel "github.com/frahmantamala/people-management/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByID(id uuid.UUID) (*departmentDatamodel.Department, error)
	GetByName(name string) (*departmentDatamodel.Department, error)
	Create(dept *departmentDatamodel.Department) error
	Update(dept *departmentDatamodel.Department) error
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

func (s *Service) GetAll() ([]*Department, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, err
	}

	departments := make([]*Department, 0, len(models))
	for _, m := range models {
		departments = append(departments, FromDataModel(m))
	}
	return departments, nil
}

func (s *Service) GetByID(id uuid.UUID) (*Department, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}

func (s *Service) Create(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &departmentDatamodel.Department{Name: dto.Name}
	if err := s.repo.Create(model); err != nil {
		return nil, err
	}

	s.logger.Info("department created", "department_id", model.ID, "name", model.Name)
	return FromDataModel(model), nil
}

func (s *Service) Update(id uuid.UUID, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	model.Name = dto.Name
	if err := s.repo.Update(model); err != nil {
		return nil, err
	}

	s.logger.Info("department updated", "department_id", model.ID)
	return FromDataModel(model), nil
}

func (s *Service) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}
