package department

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Department, error)
	GetByID(id uuid.UUID) (*Department, error)
	Create(dto CreateDepartmentDTO) (*Department, error)
	Update(id uuid.UUID, dto UpdateDepartmentDTO) (*Department, error)
	Delete(id uuid.UUID) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("failed to list departments", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	responses := make([]DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		responses = append(responses, dept.ToResponse())
	}

	h.WriteSuccess(w, http.StatusOK, DepartmentsResponse{Departments: responses}, "")
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	dept, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, dept.ToResponse(), "")
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	dept, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("failed to create department", "name", dto.Name, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, dept.ToResponse(), "Department created successfully")
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	var dto UpdateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	dept, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("failed to update department", "department_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, dept.ToResponse(), "Department updated successfully")
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("failed to delete department", "department_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, nil, "Department deleted successfully")
}
