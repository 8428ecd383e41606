// Package storage содержит работу с базой данных.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"offerbase/internal/model"
	"offerbase/internal/storage/repository"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
)

// Postgres представляет подключение к PostgreSQL
type Postgres struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPostgres создает новое подключение к PostgreSQL с retry логикой
func NewPostgres(databaseURL string, logger *zap.Logger) (*Postgres, error) {
	const maxRetries = 10
	const retryDelay = 5 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		logger.Info("Attempting to connect to database",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries))

		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(databaseURL)))

		// Настраиваем пул соединений
		sqldb.SetMaxOpenConns(25)
		sqldb.SetMaxIdleConns(10)
		sqldb.SetConnMaxLifetime(5 * time.Minute)
		sqldb.SetConnMaxIdleTime(1 * time.Minute)

		db := bun.NewDB(sqldb, pgdialect.New())

		// Добавляем отладку в режиме разработки
		if logger.Core().Enabled(zap.DebugLevel) {
			db.AddQueryHook(bundebug.NewQueryHook(
				bundebug.WithVerbose(true),
				bundebug.FromEnv("BUNDEBUG"),
			))
		}

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
		pingErr := db.PingContext(pingCtx)
		pingCancel()

		if pingErr != nil {
			logger.Warn("Failed to connect to database",
				zap.Int("attempt", attempt),
				zap.Error(pingErr))

			if err := db.Close(); err != nil {
				logger.Warn("Failed to close database connection", zap.Error(err))
			}

			if attempt == maxRetries {
				return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, pingErr)
			}

			logger.Info("Retrying connection", zap.Duration("delay", retryDelay))
			time.Sleep(retryDelay)
			continue
		}

		logger.Info("Connected to PostgreSQL database with Bun ORM",
			zap.Int("attempt", attempt))

		return &Postgres{
			db:     db,
			logger: logger,
		}, nil
	}

	return nil, fmt.Errorf("unexpected error: max retries exceeded")
}

// InitSchema создает таблицы, если их еще нет, и засевает настройки по умолчанию
func (p *Postgres) InitSchema() error {
	ctx := context.Background()

	models := []interface{}{
		(*model.Offer)(nil),
		(*model.User)(nil),
		(*model.Invite)(nil),
		(*model.Setting)(nil),
	}

	for _, m := range models {
		if _, err := p.db.NewCreateTable().
			Model(m).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if err := p.GetSettingRepository().SeedDefaults(model.DefaultSettings); err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}

	p.logger.Info("Database schema initialized")
	return nil
}

// Close закрывает соединение с базой данных
func (p *Postgres) Close() error {
	return p.db.Close()
}

// GetDB возвращает подключение к базе данных
func (p *Postgres) GetDB() *bun.DB {
	return p.db
}

// GetOfferRepository возвращает репозиторий офферов
func (p *Postgres) GetOfferRepository() model.OfferRepository {
	return repository.NewOfferRepository(p.db, p.logger)
}

// GetUserRepository возвращает репозиторий пользователей
func (p *Postgres) GetUserRepository() model.UserRepository {
	return repository.NewUserRepository(p.db, p.logger)
}

// GetInviteRepository возвращает репозиторий инвайтов
func (p *Postgres) GetInviteRepository() model.InviteRepository {
	return repository.NewInviteRepository(p.db, p.logger)
}

// GetSettingRepository возвращает репозиторий настроек
func (p *Postgres) GetSettingRepository() model.SettingRepository {
	return repository.NewSettingRepository(p.db, p.logger)
}
