// Package app содержит фабрику компонентов приложения.
package app

import (
	"fmt"
	"os"

	"offerbase/internal/config"
	"offerbase/internal/external/telegram"
	"offerbase/internal/handlers"
	"offerbase/internal/model"
	"offerbase/internal/service"
	"offerbase/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory создает компоненты приложения
type ComponentFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewComponentFactory создает новую фабрику компонентов
func NewComponentFactory(cfg *config.Config, logger *zap.Logger) *ComponentFactory {
	if cfg == nil {
		logger.Fatal("Config cannot be nil")
	}
	if logger == nil {
		panic("Logger cannot be nil")
	}

	return &ComponentFactory{
		config: cfg,
		logger: logger,
	}
}

// CreateDatabase создает подключение к базе данных и применяет схему
func (f *ComponentFactory) CreateDatabase() (*storage.Postgres, error) {
	if f.config.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := storage.NewPostgres(f.config.DatabaseURL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := db.InitSchema(); err != nil {
		return nil, fmt.Errorf("failed to init database schema: %w", err)
	}

	f.logger.Info("Database connection created successfully")
	return db, nil
}

// CreateTelegramClient создает клиент Telegram
func (f *ComponentFactory) CreateTelegramClient() (*telegram.Client, error) {
	if f.config.BotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	client, err := telegram.NewClient(f.config.BotToken, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}

	f.logger.Info("Telegram client created successfully")
	return client, nil
}

// CreateServices создает все сервисы
func (f *ComponentFactory) CreateServices(db *storage.Postgres) (*service.Services, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	services := service.NewServices(db, f.config, f.logger)
	f.logger.Info("Services created successfully")
	return services, nil
}

// CreateAppDataDirectory создает директорию данных приложения
func (f *ComponentFactory) CreateAppDataDirectory() error {
	dataDir := f.config.GetAppDataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create app data directory: %w", err)
	}
	f.logger.Info("App data directory ready", zap.String("dir", dataDir))
	return nil
}

// CreateBot создает полный экземпляр бота со всеми зависимостями
func (f *ComponentFactory) CreateBot() (*Bot, error) {
	if err := f.CreateAppDataDirectory(); err != nil {
		return nil, err
	}

	db, err := f.CreateDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	services, err := f.CreateServices(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create services: %w", err)
	}

	tgClient, err := f.CreateTelegramClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}

	bot, err := NewBot(f.config, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot.db = db
	bot.telegram = tgClient
	bot.services = services

	// Меню супер-админа доступно сразу после старта
	commands := handlers.CommandsForRole(model.RoleSuperadmin)
	if err := tgClient.BotAPI().SetCommandsForChat(f.config.SuperadminID, commands); err != nil {
		f.logger.Warn("Failed to set superadmin command menu", zap.Error(err))
	}

	f.logger.Info("Bot created successfully with all dependencies")
	return bot, nil
}
