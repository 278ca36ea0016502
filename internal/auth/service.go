package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/core/events"
	"github.com/frahmantamala/people-management/internal/googleoauth"
)

// Service orchestrates registration, local login and federated login.
type Service struct {
	userRepo       UserRepository
	sessionRepo    SessionRepository
	tokenGenerator TokenGenerator
	eventBus       *events.EventBus
	bcryptCost     int
	sessionTTL     time.Duration
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenGen TokenGenerator, eventBus *events.EventBus, bcryptCost int, sessionTTL time.Duration, logger *slog.Logger) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &Service{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		tokenGenerator: tokenGen,
		eventBus:       eventBus,
		bcryptCost:     bcryptCost,
		sessionTTL:     sessionTTL,
		logger:         logger,
	}
}

// Register creates a local account. The existence check and insert are two
// statements, so a concurrent registration can slip between them; the store
// maps the resulting uniqueness violation to the same conflict error.
func (s *Service) Register(dto RegisterDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrUserExists
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	firstName, lastName := SplitName(dto.Name)
	user, err := s.userRepo.Create(CreateUserParams{
		Email:        dto.Email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.publish(events.NewUserRegisteredEvent(user.ID.String(), user.Email, false))

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates local credentials. An unknown email and a wrong
// password produce the same error so the response leaks nothing.
func (s *Service) Login(dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil || user == nil {
		return nil, internal.ErrInvalidCredentials
	}

	storedHash, err := s.userRepo.GetPasswordHash(dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.publish(events.NewUserLoggedInEvent(user.ID.String(), user.Email))

	return &AuthResult{User: user, Token: token}, nil
}

// LoginWithGoogle signs in a federated identity, creating the account on
// first login. The generated password is random and never disclosed, so
// federated users have no local-login path until they set one.
func (s *Service) LoginWithGoogle(profile *googleoauth.Profile) (*AuthResult, error) {
	if profile == nil || profile.Email == "" {
		return nil, internal.NewBadRequestError("profile has no email", internal.ErrCodeProfileFetchFailed)
	}

	user, err := s.userRepo.GetByEmail(profile.Email)
	if err != nil || user == nil {
		rawPassword, err := GenerateRandomPassword()
		if err != nil {
			return nil, internal.NewInternalError("failed to generate password", err)
		}
		hash, err := s.HashPassword(rawPassword)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}

		user, err = s.userRepo.Create(CreateUserParams{
			Email:        profile.Email,
			FirstName:    profile.GivenName,
			LastName:     profile.FamilyName,
			PhotoURL:     profile.Picture,
			PasswordHash: hash,
			IsActive:     true,
		})
		if err != nil {
			return nil, err
		}

		s.publish(events.NewUserRegisteredEvent(user.ID.String(), user.Email, true))
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.publish(events.NewUserLoggedInEvent(user.ID.String(), user.Email))

	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) GetUserByID(id uuid.UUID) (*User, error) {
	return s.userRepo.GetByID(id)
}

// issueToken signs a token for the user and records the session row. A
// session write failure is logged and swallowed: the row is bookkeeping,
// token validity is self-contained in its signature and expiry.
func (s *Service) issueToken(user *User) (string, error) {
	token, err := s.tokenGenerator.GenerateToken(user.ID, user.RoleTypes)
	if err != nil {
		return "", internal.NewInternalError("failed to sign token", err)
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.sessionRepo.CreateSession(user.ID, token, expiresAt); err != nil {
		s.logger.Warn("failed to persist session row",
			"user_id", user.ID,
			"error", err)
	}

	return token, nil
}

func (s *Service) publish(event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateRandomPassword generates a cryptographically secure random
// password for federated accounts.
func GenerateRandomPassword() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// JWTTokenGenerator signs and verifies HS256 tokens with a shared secret.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, tokenTTL time.Duration) *JWTTokenGenerator {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: tokenTTL,
	}
}

func (j *JWTTokenGenerator) GenerateToken(userID uuid.UUID, roleTypes []string) (string, error) {
	expiresAt := time.Now().Add(j.TokenTTL)

	claims := &Claims{
		UserID:    userID.String(),
		RoleTypes: roleTypes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken verifies signature and expiry. Every failure collapses into
// the same invalid-token error; callers must treat it as "authentication
// failed", not as a distinguishable condition.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
