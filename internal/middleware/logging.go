package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Logging логирует входящие апдейты и время их обработки
func Logging(logger *zap.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(update tgbotapi.Update) {
			start := time.Now()

			fields := []zap.Field{
				zap.Int("update_id", update.UpdateID),
			}
			if update.Message != nil {
				fields = append(fields,
					zap.Int64("chat_id", update.Message.Chat.ID),
					zap.String("chat_type", update.Message.Chat.Type))
				if update.Message.From != nil {
					fields = append(fields, zap.Int64("user_id", update.Message.From.ID))
				}
				if update.Message.IsCommand() {
					fields = append(fields, zap.String("command", update.Message.Command()))
				}
			}

			next(update)

			fields = append(fields, zap.Duration("duration", time.Since(start)))
			logger.Info("Update processed", fields...)
		}
	}
}
