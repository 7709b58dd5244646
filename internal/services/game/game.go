// Package services содержит бизнес-логику работы с обзорами игр:
// создание, чтение через кэш, частичное обновление и удаление с проверкой владельца.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/game-reviews/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	"github.com/magabrotheeeer/game-reviews/internal/models"
	"github.com/magabrotheeeer/game-reviews/internal/storage"
)

var (
	// ErrGameNotFound - обзора с таким ID нет.
	ErrGameNotFound = errors.New("game not found")
	// ErrForbidden - пользователь не является владельцем обзора.
	ErrForbidden = errors.New("user not authorized")
)

// GameRepository определяет методы для работы с обзорами в хранилище.
type GameRepository interface {
	CreateGame(ctx context.Context, game models.Game) (*models.Game, error)
	GetGame(ctx context.Context, id string) (*models.Game, error)
	ListGames(ctx context.Context) ([]*models.Game, error)
	UpdateGame(ctx context.Context, game models.Game) error
	RemoveGame(ctx context.Context, id string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher публикует события об изменениях обзоров.
type EventPublisher interface {
	Publish(ctx context.Context, e rabbitmq.Event) error
}

// GameService реализует бизнес-логику работы с обзорами, включая кеширование.
type GameService struct {
	repo     GameRepository
	cache    Cache
	events   EventPublisher
	log      *slog.Logger
	cacheTTL time.Duration
}

// NewGameService создает новый экземпляр GameService.
func NewGameService(repo GameRepository, cache Cache, events EventPublisher, log *slog.Logger, cacheTTL time.Duration) *GameService {
	return &GameService{
		repo:     repo,
		cache:    cache,
		events:   events,
		log:      log,
		cacheTTL: cacheTTL,
	}
}

func cacheKey(id string) string {
	return "game:" + id
}

// Create сохраняет новый обзор от имени userID.
func (s *GameService) Create(ctx context.Context, userID string, fields models.GameFields) (*models.Game, error) {
	const op = "services.game.Create"

	game, err := s.repo.CreateGame(ctx, models.Game{
		User:      userID,
		Title:     fields.Title,
		Platform:  fields.Platform,
		Developer: fields.Developer,
		Genre:     fields.Genre,
		Rating:    fields.Rating,
		ProdYear:  fields.ProdYear,
		Comment:   fields.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new game", sl.Op(op), slog.String("id", game.ID))

	s.cacheGame(ctx, game)
	s.publish(ctx, rabbitmq.EventGameCreated, game)
	return game, nil
}

// List возвращает все обзоры, новые первыми.
func (s *GameService) List(ctx context.Context) ([]*models.Game, error) {
	const op = "services.game.List"
	games, err := s.repo.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return games, nil
}

// Read возвращает обзор по ID, используя кеш или репозиторий.
func (s *GameService) Read(ctx context.Context, id string) (*models.Game, error) {
	const op = "services.game.Read"

	var cached models.Game
	found, err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", sl.Op(op), slog.String("key", cacheKey(id)), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	game, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cacheGame(ctx, game)
	return game, nil
}

// Update переносит в обзор непустые поля patch. Менять обзор может только владелец.
func (s *GameService) Update(ctx context.Context, id, userID string, patch models.GameFields) (*models.Game, error) {
	const op = "services.game.Update"

	game, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if game.User != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if !game.Apply(patch) {
		return game, nil
	}
	if err = s.repo.UpdateGame(ctx, *game); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrGameNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated game", sl.Op(op), slog.String("id", game.ID))

	s.cacheGame(ctx, game)
	s.publish(ctx, rabbitmq.EventGameUpdated, game)
	return game, nil
}

// Remove удаляет обзор. Удалять может только владелец.
func (s *GameService) Remove(ctx context.Context, id, userID string) error {
	const op = "services.game.Remove"

	game, err := s.load(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if game.User != userID {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if err = s.repo.RemoveGame(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGameNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed game", sl.Op(op), slog.String("id", id))

	if err = s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to remove from cache", sl.Op(op), slog.String("key", cacheKey(id)), sl.Err(err))
	}
	s.publish(ctx, rabbitmq.EventGameDeleted, game)
	return nil
}

// load читает обзор из репозитория, минуя кеш.
func (s *GameService) load(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.repo.GetGame(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) cacheGame(ctx context.Context, game *models.Game) {
	if err := s.cache.Set(ctx, cacheKey(game.ID), game, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache game", slog.String("key", cacheKey(game.ID)), sl.Err(err))
	}
}

func (s *GameService) publish(ctx context.Context, eventType string, game *models.Game) {
	err := s.events.Publish(ctx, rabbitmq.Event{
		Type:   eventType,
		GameID: game.ID,
		UserID: game.User,
		At:     time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("failed to publish event", slog.String("type", eventType), sl.Err(err))
	}
}
