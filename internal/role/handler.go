package role

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Role, error)
	GetByID(id uuid.UUID) (*Role, error)
	Create(dto CreateRoleDTO) (*Role, error)
	Update(id uuid.UUID, dto UpdateRoleDTO) (*Role, error)
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

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("failed to list roles", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	responses := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, role.ToResponse())
	}

	h.WriteSuccess(w, http.StatusOK, RolesResponse{Roles: responses}, "")
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	role, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, role.ToResponse(), "")
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	role, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("failed to create role", "name", dto.Name, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, role.ToResponse(), "Role created successfully")
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	role, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("failed to update role", "role_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, role.ToResponse(), "Role updated successfully")
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("failed to delete role", "role_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, nil, "Role deleted successfully")
}
