// Package service содержит бизнес-логику приложения.
package service

import (
	"offerbase/internal/config"
	"offerbase/internal/storage"

	"go.uber.org/zap"
)

// Services содержит все сервисы приложения
type Services struct {
	Offer    *OfferService
	User     *UserService
	Invite   *InviteService
	Settings *SettingsService
}

// NewServices создает все сервисы
func NewServices(db *storage.Postgres, cfg *config.Config, logger *zap.Logger) *Services {
	settingsService := NewSettingsService(db.GetSettingRepository(), logger)
	if err := settingsService.Reload(); err != nil {
		logger.Error("Failed to load settings on startup", zap.Error(err))
	}

	return &Services{
		Offer:    NewOfferService(db.GetOfferRepository(), logger),
		User:     NewUserService(db.GetUserRepository(), cfg.SuperadminID, logger),
		Invite:   NewInviteService(db.GetInviteRepository(), logger),
		Settings: settingsService,
	}
}
