package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/game-reviews/internal/models"
)

const gameColumns = `id, user_id, title, platform, developer, genre, rating, prod_year, comment, created_at`

// CreateGame вставляет новый обзор и возвращает его с назначенными ID и датой создания.
func (s *Storage) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	const op = "storage.CreateGame"

	game.ID = uuid.NewString()
	game.Date = time.Now().UTC().Truncate(time.Microsecond)

	query := `INSERT INTO games (` + gameColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := s.DB.ExecContext(ctx, query,
		game.ID, game.User, game.Title, game.Platform, game.Developer, game.Genre,
		game.Rating, game.ProdYear, game.Comment, game.Date); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &game, nil
}

// GetGame возвращает обзор по ID. Некорректный ID трактуется как отсутствующая запись.
func (s *Storage) GetGame(ctx context.Context, id string) (*models.Game, error) {
	const op = "storage.GetGame"

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	var g models.Game
	if err := scanGame(s.DB.QueryRowContext(ctx, query, id), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &g, nil
}

// ListGames возвращает все обзоры, новые первыми.
func (s *Storage) ListGames(ctx context.Context) ([]*models.Game, error) {
	const op = "storage.ListGames"

	query := `SELECT ` + gameColumns + ` FROM games ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Game, 0)
	for rows.Next() {
		var g models.Game
		if err = scanGame(rows, &g); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateGame перезаписывает изменяемые поля обзора. Владелец и дата создания не меняются.
func (s *Storage) UpdateGame(ctx context.Context, game models.Game) error {
	const op = "storage.UpdateGame"

	query := `UPDATE games
			  SET title = $1, platform = $2, developer = $3, genre = $4,
			      rating = $5, prod_year = $6, comment = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		game.Title, game.Platform, game.Developer, game.Genre,
		game.Rating, game.ProdYear, game.Comment, game.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, result)
}

// RemoveGame удаляет обзор по ID.
func (s *Storage) RemoveGame(ctx context.Context, id string) error {
	const op = "storage.RemoveGame"

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner, g *models.Game) error {
	if err := row.Scan(&g.ID, &g.User, &g.Title, &g.Platform, &g.Developer, &g.Genre,
		&g.Rating, &g.ProdYear, &g.Comment, &g.Date); err != nil {
		return err
	}
	g.Date = g.Date.UTC()
	return nil
}

func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
