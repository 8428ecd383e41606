// Package app содержит маршрутизацию команд.
package app

import (
	"strings"

	"offerbase/internal/config"
	"offerbase/internal/external/telegram"
	"offerbase/internal/handlers"
	"offerbase/internal/middleware"
	"offerbase/internal/model"
	"offerbase/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Router обрабатывает маршрутизацию команд
type Router struct {
	handlers *handlers.Handler
	gate     *middleware.AuthGate
	botAPI   telegram.BotAPI
	process  middleware.HandlerFunc
	logger   *zap.Logger
}

// NewRouter создает новый роутер
func NewRouter(services *service.Services, cfg *config.Config, logger *zap.Logger, botAPI telegram.BotAPI) *Router {
	r := &Router{
		handlers: handlers.NewHandler(services, botAPI, logger),
		gate:     middleware.NewAuthGate(cfg.SuperadminID, services.User, services.Invite, logger),
		botAPI:   botAPI,
		logger:   logger,
	}
	r.process = middleware.Chain(r.dispatch, middleware.Default(logger)...)
	return r
}

// HandleUpdate обрабатывает обновление от Telegram
func (r *Router) HandleUpdate(update tgbotapi.Update) {
	r.process(update)
}

// dispatch проводит сообщение через шлюз авторизации и вызывает обработчик
func (r *Router) dispatch(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message

	decision := r.gate.Authorize(msg)

	if decision.Reply != "" {
		if err := r.botAPI.SendMessage(msg.Chat.ID, decision.Reply); err != nil {
			r.logger.Error("Failed to send gate reply", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		}
	}
	if decision.Audit != "" {
		r.handlers.Audit(decision.Audit)
	}
	if !decision.Allow {
		return
	}

	if decision.Registered {
		r.handlers.UpdateCommandMenu(msg.Chat.ID, decision.Role)
	}

	if !msg.IsCommand() {
		return
	}

	r.handleCommand(msg, decision.Role)
}

// handleCommand диспетчеризует команду по имени
func (r *Router) handleCommand(msg *tgbotapi.Message, role model.Role) {
	command := strings.ToLower(msg.Command())

	switch command {
	case "start":
		r.handlers.HandleStart(msg, role)
	case "help":
		r.handlers.HandleHelp(msg, role)
	case "check", "search":
		r.handlers.HandleCheck(msg, role, false)
	case "check_archive":
		r.handlers.HandleCheck(msg, role, true)
	case "export":
		r.handlers.HandleExport(msg, role, false)
	case "export_archive":
		r.handlers.HandleExport(msg, role, true)
	case "add":
		r.handlers.HandleAdd(msg, role)
	case "edit":
		r.handlers.HandleEdit(msg, role)
	case "del":
		r.handlers.HandleDel(msg, role)
	case "my_offers":
		r.handlers.HandleMyOffers(msg, role)
	case "invite":
		r.handlers.HandleInvite(msg, role)
	case "users":
		r.handlers.HandleUsers(msg, role)
	case "setmanager":
		r.handlers.HandleSetRole(msg, role, model.RoleManager)
	case "setadmin":
		r.handlers.HandleSetRole(msg, role, model.RoleAdmin)
	case "setuser":
		r.handlers.HandleSetRole(msg, role, model.RoleUser)
	case "fire":
		r.handlers.HandleFire(msg, role)
	case "setlog":
		r.handlers.HandleSetLog(msg, role)
	case "config":
		r.handlers.HandleConfig(msg, role)
	default:
		// Незнакомые команды игнорируются, чтобы не шуметь в группах
		r.logger.Debug("Unknown command", zap.String("command", command))
	}
}
