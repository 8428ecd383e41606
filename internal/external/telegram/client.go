// Package telegram содержит интеграцию с Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Client представляет клиент Telegram Bot API
type Client struct {
	bot    *tgbotapi.BotAPI
	botAPI BotAPI
	logger *zap.Logger
}

// NewClient создает новый клиент Telegram
func NewClient(botToken string, logger *zap.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false
	logger.Info("Telegram bot created", zap.String("username", bot.Self.UserName))

	return &Client{
		bot:    bot,
		botAPI: NewTelegramBotAPI(bot, logger),
		logger: logger,
	}, nil
}

// BotAPI возвращает интерфейс отправки
func (c *Client) BotAPI() BotAPI {
	return c.botAPI
}

// Start запускает обработку обновлений
func (c *Client) Start(ctx context.Context, router RouterInterface, pollTimeout time.Duration) error {
	// Удаляем webhook если есть
	_, err := c.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
	if err != nil {
		c.logger.Error("Failed to delete webhook", zap.Error(err))
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(pollTimeout.Seconds())
	u.AllowedUpdates = []string{"message"}

	c.logger.Info("Starting to fetch updates")
	updatesChan := c.bot.GetUpdatesChan(u)
	if updatesChan == nil {
		return fmt.Errorf("failed to create updates channel")
	}

	reconnectDelay := 10 * time.Second

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Update loop cancelled by context")
			return ctx.Err()
		case update, ok := <-updatesChan:
			if !ok {
				c.logger.Warn("Update channel closed, will try to reconnect after delay")
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(reconnectDelay):
					return fmt.Errorf("update channel closed, reconnecting")
				}
			}

			c.processUpdate(update, router)
		}
	}
}

// processUpdate обрабатывает одно обновление
func (c *Client) processUpdate(update tgbotapi.Update, router RouterInterface) {
	if update.Message == nil {
		return
	}

	// Вложения файлов не обрабатываем
	if update.Message.Document != nil {
		return
	}

	c.logger.Debug("Received message",
		zap.Int("update_id", update.UpdateID),
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text))

	router.HandleUpdate(update)
}
