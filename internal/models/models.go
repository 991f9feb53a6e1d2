package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email     string    `gorm:"not null"                 json:"email"`
	Password  string    `gorm:"not null"                 json:"-"`
	IsActive  bool      `gorm:"not null"                 json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `gorm:"not null"                 json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
