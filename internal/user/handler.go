package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/auth"
	"github.com/frahmantamala/people-management/internal/transport"
)

type ServiceAPI interface {
	GetByID(id uuid.UUID) (*User, error)
	Update(id uuid.UUID, dto UpdateUserDTO) (*User, error)
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

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoToken)
		return
	}

	user, err := h.Service.GetByID(authUser.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, user.ToResponse(), "")
}

func (h *Handler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoToken)
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	user, err := h.Service.Update(authUser.ID, dto)
	if err != nil {
		h.Logger.Error("profile update failed", "user_id", authUser.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, user.ToResponse(), "User updated successfully")
}

func (h *Handler) DeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoToken)
		return
	}

	if err := h.Service.Delete(authUser.ID); err != nil {
		h.Logger.Error("account deletion failed", "user_id", authUser.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, nil, "User deleted successfully")
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	user, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, user.ToResponse(), "")
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("id must be a valid uuid", internal.ErrCodeValidationFailed))
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	user, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("profile update failed", "user_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, user.ToResponse(), "User updated successfully")
}
