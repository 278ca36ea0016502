package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name"`
	PhotoURL     string     `gorm:"column:photo_url"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	IsDeleted    bool       `gorm:"column:is_deleted;default:false"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
