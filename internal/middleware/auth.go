package middleware

import (
	"errors"
	"fmt"
	"strings"

	"offerbase/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Тексты шлюза авторизации
const (
	msgBanned        = "⛔️ Вы забанены."
	msgAccessDenied  = "⛔️ Доступ запрещен. Обратитесь к администратору за ссылкой-приглашением."
	msgInviteInvalid = "⛔️ Ссылка-приглашение недействительна или исчерпана."
	msgStoreFault    = "⚠️ Сервис временно недоступен. Попробуйте позже."
)

// RoleResolver разрешает роль пользователя и регистрирует новых
type RoleResolver interface {
	ResolveRole(userID int64) (role model.Role, known bool, err error)
	Register(userID int64, username string, role model.Role) error
}

// InviteRedeemer погашает инвайт-коды
type InviteRedeemer interface {
	Redeem(code string) (model.Role, error)
}

// Decision — результат авторизации одного сообщения.
// Reply отправляется в исходный чат, Audit — в настроенный лог-чат.
type Decision struct {
	Allow      bool
	Role       model.Role
	Registered bool
	Reply      string
	Audit      string
}

// AuthGate проверяет каждое входящее сообщение до диспетчеризации команд
type AuthGate struct {
	superadminID int64
	users        RoleResolver
	invites      InviteRedeemer
	logger       *zap.Logger
}

// NewAuthGate создает шлюз авторизации
func NewAuthGate(superadminID int64, users RoleResolver, invites InviteRedeemer, logger *zap.Logger) *AuthGate {
	return &AuthGate{
		superadminID: superadminID,
		users:        users,
		invites:      invites,
		logger:       logger,
	}
}

// Authorize принимает решение по сообщению: пропустить с ролью, молча
// игнорировать или отклонить с ответом. Суперадмин проходит всегда,
// даже если хранилище недоступно.
func (g *AuthGate) Authorize(msg *tgbotapi.Message) Decision {
	if msg.From == nil {
		return Decision{}
	}

	userID := msg.From.ID
	if userID == g.superadminID {
		return Decision{Allow: true, Role: model.RoleSuperadmin}
	}

	role, known, err := g.users.ResolveRole(userID)
	if err != nil {
		g.logger.Error("Failed to resolve user role", zap.Int64("user_id", userID), zap.Error(err))
		return g.deny(msg, msgStoreFault)
	}

	if known {
		if role == model.RoleBanned {
			return g.deny(msg, msgBanned)
		}
		return Decision{Allow: true, Role: role}
	}

	// Незнакомый пользователь: единственный вход — /start с инвайт-кодом
	if code, ok := inviteCode(msg.Text); ok {
		return g.redeem(msg, code)
	}

	return g.deny(msg, msgAccessDenied)
}

// redeem погашает инвайт-код и регистрирует пользователя
func (g *AuthGate) redeem(msg *tgbotapi.Message, code string) Decision {
	userID := msg.From.ID

	role, err := g.invites.Redeem(code)
	if errors.Is(err, model.ErrInviteInvalid) {
		g.logger.Info("Rejected invalid invite code", zap.Int64("user_id", userID))
		return g.deny(msg, msgInviteInvalid)
	}
	if err != nil {
		g.logger.Error("Failed to redeem invite", zap.Int64("user_id", userID), zap.Error(err))
		return g.deny(msg, msgStoreFault)
	}

	if err := g.users.Register(userID, msg.From.UserName, role); err != nil {
		g.logger.Error("Failed to register invited user", zap.Int64("user_id", userID), zap.Error(err))
		return g.deny(msg, msgStoreFault)
	}

	g.logger.Info("Invite redeemed",
		zap.Int64("user_id", userID),
		zap.String("role", string(role)))

	return Decision{
		Allow:      true,
		Role:       role,
		Registered: true,
		Reply: fmt.Sprintf("🎉 Добро пожаловать! Ваша роль: <b>%s</b>.\nНапишите /help, чтобы посмотреть доступные команды.",
			role),
		Audit: fmt.Sprintf("🎫 <b>Активация инвайта!</b>\n%s зашел как <b>%s</b>.",
			userLink(msg.From), role),
	}
}

// deny отклоняет сообщение; в групповых чатах — молча
func (g *AuthGate) deny(msg *tgbotapi.Message, reply string) Decision {
	if !msg.Chat.IsPrivate() {
		return Decision{}
	}
	return Decision{Reply: reply}
}

// inviteCode извлекает код из "/start <code>"
func inviteCode(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", false
	}
	if fields[0] != "/start" && !strings.HasPrefix(fields[0], "/start@") {
		return "", false
	}
	return fields[1], true
}

// userLink собирает HTML-ссылку на пользователя для лог-чата
func userLink(from *tgbotapi.User) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = fmt.Sprintf("id%d", from.ID)
	}
	return fmt.Sprintf("<a href=\"tg://user?id=%d\">%s</a>", from.ID, name)
}
