package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaim - вложенный объект "user" внутри токена.
type UserClaim struct {
	ID string `json:"id"`
}

// CustomClaims описывает данные, хранящиеся в JWT.
type CustomClaims struct {
	User                 UserClaim `json:"user"` // Пользователь, которому выдан токен
	jwt.RegisteredClaims           // ExpiresAt, IssuedAt
}

// GenerateToken создает JWT токен для userID, подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userID string) (string, error) {
	const op = "jwt.GenerateToken"
	now := j.now()
	claims := CustomClaims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT токен, проверяет подпись и срок действия.
//
// Возвращает ошибку, обёрнутую в ErrExpiredToken, если подпись верна, но срок истёк,
// и ErrMalformedToken во всех остальных случаях.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedToken, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}
	return claims, nil
}
