// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель - единообразно формировать структурированные поля лога
// для ошибок и названий операций.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает slog.Attr с именем операции, в рамках которой пишется лог.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
