package domain

import (
	"time"
)

type AccessLevel string

const (
	LevelStaff AccessLevel = "staff"
	LevelAdmin AccessLevel = "admin"
)

type User struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	Level        AccessLevel `json:"level"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	Version      int32       `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Level == LevelAdmin
}
