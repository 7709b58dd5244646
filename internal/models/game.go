package models

import "time"

// Game представляет обзор игры, созданный пользователем.
// Поле User - идентификатор владельца, только он может менять и удалять запись.
type Game struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Platform  string    `json:"platform"`
	Developer string    `json:"developer"`
	Genre     string    `json:"genre"`
	Rating    string    `json:"rating"`
	ProdYear  string    `json:"prodYear"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"` // Дата создания, не изменяется
}

// GameFields - изменяемые поля обзора, приходящие из JSON-запроса.
// При создании обязательны все поля, при обновлении пустое поле означает
// «оставить прежнее значение».
type GameFields struct {
	Title     string `json:"title" validate:"required"`
	Platform  string `json:"platform" validate:"required"`
	Developer string `json:"developer" validate:"required"`
	Genre     string `json:"genre" validate:"required"`
	Rating    string `json:"rating" validate:"required"`
	ProdYear  string `json:"prodYear" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
}

// Apply переносит в игру непустые поля patch и сообщает, изменилось ли что-нибудь.
func (g *Game) Apply(patch GameFields) bool {
	changed := false
	set := func(dst *string, src string) {
		if src != "" && *dst != src {
			*dst = src
			changed = true
		}
	}
	set(&g.Title, patch.Title)
	set(&g.Platform, patch.Platform)
	set(&g.Developer, patch.Developer)
	set(&g.Genre, patch.Genre)
	set(&g.Rating, patch.Rating)
	set(&g.ProdYear, patch.ProdYear)
	set(&g.Comment, patch.Comment)
	return changed
}
