package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/people-management/internal"
	sessiondm "github.com/frahmantamala/people-management/internal/core/datamodel/session"
)

// SessionRepository records issued tokens. Rows are append-only audit
// bookkeeping; token validity is decided by signature and expiry alone.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(userID uuid.UUID, token string, expiresAt time.Time) error {
	session := sessiondm.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := r.db.Create(&session).Error; err != nil {
		return internal.NewDatabaseError("failed to create session", err)
	}
	return nil
}
