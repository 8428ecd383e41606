// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Invite, InviteRepository
package model

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ErrInviteInvalid возвращается для несуществующего или исчерпанного кода.
// Исчерпанный код неотличим от несуществующего.
var ErrInviteInvalid = errors.New("invite code is invalid or exhausted")

// Invite представляет инвайт-код.
// Запись удаляется в момент, когда uses_left достигает нуля.
type Invite struct {
	bun.BaseModel `bun:"table:invites,alias:i"`

	Code      string    `bun:"code,pk" json:"code"`
	Role      Role      `bun:"role,notnull" json:"role"`
	UsesLeft  int       `bun:"uses_left,notnull,default:1" json:"uses_left"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// InviteRepository определяет интерфейс для работы с инвайтами
type InviteRepository interface {
	Create(invite *Invite) error
	// Redeem атомарно списывает одно использование кода.
	// Возвращает ErrInviteInvalid для неизвестного или исчерпанного кода.
	Redeem(code string) (Role, error)
}
