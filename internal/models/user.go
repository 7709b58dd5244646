// Package models содержит доменные модели пользователя и игрового обзора.
// Структуры используются в бизнес‑логике, хранилище и при формировании ответов API.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    `json:"id"`         // Идентификатор, назначается хранилищем
	Name         string    `json:"name"`       // Имя пользователя
	Email        string    `json:"email"`      // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`          // Хэш пароля, наружу никогда не отдаётся
	CreatedAt    time.Time `json:"created_at"` // Дата регистрации
}
