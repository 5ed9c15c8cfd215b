package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	UserID       string         `gorm:"primaryKey;column:user_id;size:36" json:"user_id"`
	Name         string         `gorm:"column:name;size:100;not null" json:"name"`
	Email        string         `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string         `gorm:"column:role;type:enum('guard','employer','admin');not null;index" json:"role"`
	Phone        string         `gorm:"column:phone;size:20" json:"phone,omitempty"`
	Status       string         `gorm:"column:status;type:enum('active','deactivated');default:'active'" json:"status"`
	LastLogin    *time.Time     `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
