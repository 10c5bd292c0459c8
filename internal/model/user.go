package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User — учётная запись. Создаётся только при провижининге (seed).
type User struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"` // bcrypt-хеш
	Name     *string `json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate выдаёт UUID, если идентификатор не задан.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
