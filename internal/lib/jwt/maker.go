// Package jwt реализует выпуск и проверку подписанных JWT токенов сессии.
//
// Maker определяет интерфейс для создания и проверки токенов с идентификатором пользователя.
// MakerImpl - конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"errors"
	"time"
)

// DefaultTokenTTL - время жизни токена, если в конфиге не указано иное.
const DefaultTokenTTL = 10 * time.Hour

var (
	// ErrMalformedToken - токен не удалось разобрать или подпись не совпала.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken - подпись верна, но срок действия токена истёк.
	ErrExpiredToken = errors.New("token expired")
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с указанным ID.
	GenerateToken(userID string) (string, error)
	// ParseToken проверяет токен и возвращает его claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
// Нулевой TTL заменяется на DefaultTokenTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
