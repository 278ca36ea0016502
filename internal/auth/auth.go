package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/frahmantamala/people-management/internal/googleoauth"
)

// Role types form a fixed enumeration; tokens carry them as claims.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleModerator  = "MODERATOR"
	RoleManager    = "MANAGER"
	RoleUser       = "USER"
	RoleGuest      = "GUEST"
)

// DefaultRoleType is assigned best-effort to every newly created user.
const DefaultRoleType = RoleUser

func ValidRoleType(roleType string) bool {
	switch roleType {
	case RoleSuperAdmin, RoleAdmin, RoleModerator, RoleManager, RoleUser, RoleGuest:
		return true
	}
	return false
}

// User is the authenticated identity attached to request context. RoleTypes
// come from the verified token claims, not from a store re-query, so role
// changes only take effect when the token is reissued.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	RoleTypes []string  `json:"roleTypes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) HasRole(roleType string) bool {
	for _, r := range u.RoleTypes {
		if r == roleType {
			return true
		}
	}
	return false
}

func (u *User) HasAnyRole(roleTypes ...string) bool {
	for _, have := range u.RoleTypes {
		for _, want := range roleTypes {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasAnyRole(RoleAdmin, RoleSuperAdmin)
}

// Claims is the payload embedded in a signed token.
type Claims struct {
	UserID    string   `json:"user_id"`
	RoleTypes []string `json:"role_types"`
	jwt.RegisteredClaims
}

// AuthResult pairs the persisted user with a freshly signed token.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type TokenGenerator interface {
	GenerateToken(userID uuid.UUID, roleTypes []string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// CreateUserParams is everything the store needs to insert a user row.
type CreateUserParams struct {
	Email        string
	FirstName    string
	LastName     string
	PhotoURL     string
	PasswordHash string
	IsActive     bool
}

type UserRepository interface {
	GetByEmail(email string) (*User, error)
	GetByID(id uuid.UUID) (*User, error)
	GetPasswordHash(email string) (string, error)
	Create(params CreateUserParams) (*User, error)
}

type SessionRepository interface {
	CreateSession(userID uuid.UUID, token string, expiresAt time.Time) error
}

type OAuthExchanger interface {
	AuthURL() string
	ExchangeCode(ctx context.Context, code string) (*googleoauth.TokenResponse, error)
	FetchProfile(ctx context.Context, accessToken string) (*googleoauth.Profile, error)
}

type ServiceAPI interface {
	Register(dto RegisterDTO) (*AuthResult, error)
	Login(dto LoginDTO) (*AuthResult, error)
	LoginWithGoogle(profile *googleoauth.Profile) (*AuthResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(id uuid.UUID) (*User, error)
}

type ctxKey string

const contextUserKey ctxKey = "authUser"

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(contextUserKey).(*User)
	return user, ok
}
