// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"offerbase/internal/config"
	"offerbase/internal/external/telegram"
	"offerbase/internal/service"
	"offerbase/internal/storage"

	"go.uber.org/zap"
)

// Bot представляет основную логику бота
type Bot struct {
	config   *config.Config
	logger   *zap.Logger
	db       *storage.Postgres
	telegram *telegram.Client
	services *service.Services
	stopChan chan struct{}
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewBot создает новый экземпляр бота
func NewBot(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Bot{
		config:   cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// NewBotWithFactory создает новый экземпляр бота через фабрику
func NewBotWithFactory(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	factory := NewComponentFactory(cfg, logger)
	return factory.CreateBot()
}

// Start запускает бота
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	maxRestartAttempts := 10
	restartAttempts := 0
	restartDelay := 10 * time.Second

	for {
		select {
		case <-b.ctx.Done():
			b.logger.Info("Bot main loop cancelled by context")
			return b.ctx.Err()
		case <-b.stopChan:
			b.logger.Info("Bot main loop stopped by stop signal")
			return nil
		default:
			if err := b.runUpdateLoop(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					b.logger.Info("Update loop stopped due to context cancellation")
					return err
				}

				restartAttempts++
				b.logger.Error("Update loop error",
					zap.Error(err),
					zap.Int("restart_attempt", restartAttempts),
					zap.Int("max_attempts", maxRestartAttempts))

				if restartAttempts > maxRestartAttempts {
					return fmt.Errorf("max restart attempts reached: %w", err)
				}

				delay := time.Duration(restartAttempts) * restartDelay
				if delay > 5*time.Minute {
					delay = 5 * time.Minute
				}

				b.logger.Info("Waiting before restart", zap.Duration("delay", delay))
				select {
				case <-b.ctx.Done():
					return b.ctx.Err()
				case <-time.After(delay):
					continue
				}
			} else {
				restartAttempts = 0
			}
		}
	}
}

// Stop gracefully останавливает бота
func (b *Bot) Stop() error {
	b.logger.Info("Stopping bot gracefully")

	if b.cancel != nil {
		b.cancel()
	}

	select {
	case <-b.stopChan:
	default:
		close(b.stopChan)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.wg.Wait()
	}()

	select {
	case <-done:
		b.logger.Info("All goroutines stopped successfully")
	case <-time.After(30 * time.Second):
		b.logger.Warn("Graceful shutdown timeout exceeded, forcing stop")
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			b.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	b.logger.Info("Bot stopped successfully")
	return nil
}

// runUpdateLoop запускает цикл обработки обновлений
func (b *Bot) runUpdateLoop(ctx context.Context) error {
	b.logger.Info("Starting update loop")

	router := NewRouter(b.services, b.config, b.logger, b.telegram.BotAPI())

	return b.telegram.Start(ctx, router, b.config.PollTimeout)
}
