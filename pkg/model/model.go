package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatar is assigned to users created without an avatar URL.
const DefaultAvatar = "https://randomuser.me/api/portraits/women/41.jpg"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"email"`
	Avatar    string    `gorm:"type:varchar(180);not null" json:"avatar"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Todos []Todo `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"todos"`
}

func (User) TableName() string {
	return "user"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Avatar == "" {
		u.Avatar = DefaultAvatar
	}
	return nil
}

type Todo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"type:varchar(255);not null" json:"label"`
	IsDone    bool      `gorm:"not null;default:false" json:"is_done"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	UserID    uint      `gorm:"not null" json:"user_id"`
}

func (Todo) TableName() string {
	return "todos"
}

// SerializedUser is the response shape for a user. Timestamps are internal
// and never exposed; Todos is always a list, never null.
type SerializedUser struct {
	ID       uint             `json:"id"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Avatar   string           `json:"avatar"`
	Todos    []SerializedTodo `json:"todos"`
}

type SerializedTodo struct {
	ID     uint   `json:"id"`
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
	UserID uint   `json:"user_id"`
}

func (u *User) Serialize() SerializedUser {
	todos := make([]SerializedTodo, 0, len(u.Todos))
	for _, t := range u.Todos {
		todos = append(todos, t.Serialize())
	}
	return SerializedUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Todos:    todos,
	}
}

func (t Todo) Serialize() SerializedTodo {
	return SerializedTodo{
		ID:     t.ID,
		Label:  t.Label,
		IsDone: t.IsDone,
		UserID: t.UserID,
	}
}
