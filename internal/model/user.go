// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: User, UserRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// User представляет пользователя бота.
// Супер-админ задается конфигурацией процесса и строки в таблице не имеет.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID   int64     `bun:"user_id,pk" json:"user_id"`
	Username string    `bun:"username,nullzero" json:"username,omitempty"`
	Role     Role      `bun:"role,notnull,default:'user'" json:"role"`
	JoinedAt time.Time `bun:"joined_at,notnull,default:current_timestamp" json:"joined_at"`
}

// DisplayName возвращает отображаемое имя пользователя
func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return "-"
}

// UserRepository определяет интерфейс для работы с пользователями
type UserRepository interface {
	GetByID(id int64) (*User, error)
	// Register вставляет строку только если пользователя еще нет.
	// Существующая строка не перезаписывается.
	Register(user *User) error
	SetRole(id int64, role Role) error
	GetAll() ([]User, error)
}
