package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserRegistered = "user.registered"
	EventTypeUserLoggedIn   = "user.logged_in"
	EventTypeUserDeleted    = "user.deleted"
)

type UserRegisteredEvent struct {
	BaseEvent
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Federated bool   `json:"federated"`
}

func NewUserRegisteredEvent(userID, email string, federated bool) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":   userID,
				"email":     email,
				"federated": federated,
			},
		},
		UserID:    userID,
		Email:     email,
		Federated: federated,
	}
}

type UserLoggedInEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func NewUserLoggedInEvent(userID, email string) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserLoggedIn,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"email":   email,
			},
		},
		UserID: userID,
		Email:  email,
	}
}

type UserDeletedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
}

func NewUserDeletedEvent(userID string) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
			},
		},
		UserID: userID,
	}
}
