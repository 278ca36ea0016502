package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/transport"
	"github.com/frahmantamala/people-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	OAuth   OAuthExchanger
}

func NewHandler(svc ServiceAPI, oauth OAuthExchanger) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		OAuth:       oauth,
	}
}

// RegisterResponse is the data payload returned by POST /auth/register.
type RegisterResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResponse is the data payload returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	result, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "email", dto.Email, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, RegisterResponse{
		ID:        result.User.ID.String(),
		Email:     result.User.Email,
		FirstName: result.User.FirstName,
		LastName:  result.User.LastName,
	}, "User registered successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	result, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, LoginResponse{
		Token: result.Token,
		User:  result.User,
	}, "User logged in successfully")
}

// GoogleRedirect sends the browser to the provider's consent screen.
func (h *Handler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.OAuth.AuthURL(), http.StatusFound)
}

// GoogleCallback completes the code-for-token exchange and signs the user
// in, creating the account on first federated login.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		h.WriteAppError(w, internal.NewValidationError("no code provided", internal.ErrCodeMissingOAuthCode))
		return
	}

	tokens, err := h.OAuth.ExchangeCode(r.Context(), code)
	if err != nil {
		h.Logger.Error("oauth code exchange failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	profile, err := h.OAuth.FetchProfile(r.Context(), tokens.AccessToken)
	if err != nil {
		h.Logger.Error("oauth profile fetch failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.LoginWithGoogle(profile)
	if err != nil {
		h.Logger.Error("federated login failed", "email", profile.Email, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, LoginResponse{
		Token: result.Token,
		User:  result.User,
	}, "User logged in successfully")
}

// AuthMiddleware derives the authenticated identity from the bearer token.
// A verified token whose user no longer exists is rejected the same way as
// an unverifiable one.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteAppError(w, internal.ErrNoToken)
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.WriteAppError(w, internal.ErrInvalidToken)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			h.Logger.Warn("token carries malformed user id", "value", claims.UserID)
			h.WriteAppError(w, internal.ErrInvalidToken)
			return
		}

		user, err := h.Service.GetUserByID(userID)
		if err != nil || user == nil {
			h.Logger.Warn("token references missing user", "user_id", claims.UserID)
			h.WriteAppError(w, internal.ErrInvalidToken)
			return
		}

		// Role claims come from the token, not the store: role changes
		// only apply once the token is reissued.
		user.RoleTypes = claims.RoleTypes

		ctx := ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
