// Package middleware содержит middleware для обработки обновлений.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandlerFunc обрабатывает одно обновление
type HandlerFunc func(update tgbotapi.Update)

// MiddlewareFunc оборачивает обработчик
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

// Chain собирает цепочку middleware вокруг обработчика.
// Первый элемент списка оказывается внешним слоем.
func Chain(handler HandlerFunc, middlewares ...MiddlewareFunc) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// Default возвращает стандартную цепочку: recovery снаружи, затем логирование
func Default(logger *zap.Logger) []MiddlewareFunc {
	return []MiddlewareFunc{
		Recovery(logger),
		Logging(logger),
	}
}
