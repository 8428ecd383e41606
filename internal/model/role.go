// Package model содержит модели данных.
//
// Группа: BASE - Роли и права доступа
// Содержит: Role, Capability
package model

// Role представляет роль пользователя
type Role string

// Роли пользователей
const (
	RoleUser       Role = "user"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
	RoleBanned     Role = "banned"
)

// Capability представляет право, доступное роли
type Capability string

// Права доступа
const (
	CapSearch      Capability = "search"       // поиск по активной базе
	CapExport      Capability = "export"       // выгрузка в Excel
	CapManageOwn   Capability = "manage_own"   // добавление и правка своих офферов
	CapManageAny   Capability = "manage_any"   // правка любых офферов
	CapViewArchive Capability = "view_archive" // просмотр и выгрузка архива
	CapInvite      Capability = "invite"       // создание инвайтов
	CapManageUsers Capability = "manage_users" // управление ролями и банами
)

// roleCapabilities — единственный источник истины о правах ролей.
// Меню команд и проверки в обработчиках выводятся из этой таблицы.
var roleCapabilities = map[Role][]Capability{
	RoleUser:    {CapSearch, CapExport},
	RoleManager: {CapSearch, CapExport, CapManageOwn},
	RoleAdmin:   {CapSearch, CapExport, CapManageOwn, CapManageAny, CapViewArchive, CapInvite},
	RoleSuperadmin: {
		CapSearch, CapExport, CapManageOwn, CapManageAny,
		CapViewArchive, CapInvite, CapManageUsers,
	},
	RoleBanned: {},
}

// Can проверяет, доступно ли роли указанное право
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// IsValid проверяет валидность роли
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin, RoleSuperadmin, RoleBanned:
		return true
	}
	return false
}

// Grantable проверяет, можно ли выдать роль через инвайт.
// Роль superadmin через инвайт не выдается никогда.
func (r Role) Grantable() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// RestrictsToOwn сообщает, ограничен ли просмотр и правка собственными офферами
func (r Role) RestrictsToOwn() bool {
	return r == RoleManager
}
