package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramBotAPI реализует BotAPI поверх tgbotapi
type telegramBotAPI struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
}

// NewTelegramBotAPI создает обертку над Telegram Bot API
func NewTelegramBotAPI(bot *tgbotapi.BotAPI, logger *zap.Logger) BotAPI {
	return &telegramBotAPI{
		bot:    bot,
		logger: logger,
	}
}

// SendMessage отправляет HTML-сообщение в чат
func (a *telegramBotAPI) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := a.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendDocument отправляет документ в чат
func (a *telegramBotAPI) SendDocument(chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	doc.Caption = caption

	if _, err := a.bot.Send(doc); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}

	return nil
}

// SetCommandsForChat устанавливает меню команд для конкретного чата.
// Меню косметическое: доступ контролируется только шлюзом авторизации.
func (a *telegramBotAPI) SetCommandsForChat(chatID int64, commands []tgbotapi.BotCommand) error {
	scope := tgbotapi.NewBotCommandScopeChat(chatID)
	cfg := tgbotapi.NewSetMyCommandsWithScope(scope, commands...)

	if _, err := a.bot.Request(cfg); err != nil {
		return fmt.Errorf("failed to set chat commands: %w", err)
	}

	return nil
}

// Username возвращает имя бота для сборки инвайт-ссылок
func (a *telegramBotAPI) Username() string {
	return a.bot.Self.UserName
}
