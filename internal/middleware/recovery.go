package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Recovery перехватывает панику обработчика, чтобы один плохой апдейт
// не ронял цикл опроса
func Recovery(logger *zap.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(update tgbotapi.Update) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Recovered from panic in update handler",
						zap.Any("panic", r),
						zap.Int("update_id", update.UpdateID),
						zap.Stack("stack"))
				}
			}()

			next(update)
		}
	}
}
