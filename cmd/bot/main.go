// Package main запускает Telegram-бота базы офферов.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"offerbase/internal/app"
	"offerbase/internal/config"
	"offerbase/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Инициализация логгера
	log := logger.New()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received")
		cancel()
	}()

	// Создание и запуск бота через фабрику
	bot, err := app.NewBotWithFactory(cfg, log)
	if err != nil {
		log.Fatal("Failed to create bot", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		if err := bot.Stop(); err != nil {
			log.Error("Failed to stop bot", zap.Error(err))
		}
	}()

	if err := bot.Start(ctx); err != nil && err != context.Canceled {
		log.Error("Bot stopped with error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Bot stopped successfully")
}
