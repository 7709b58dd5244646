// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля; соль генерируется на каждый вызов и хранится
// внутри самого хеша, поэтому отдельно её хранить не нужно.
// CompareHash сравнивает bcrypt-хеш с введённым паролем.
// CompareDummy выполняет сравнение той же стоимости, когда пользователь не найден.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength - наибольшая длина пароля в байтах, которую принимает bcrypt.
const MaxLength = 72

var (
	// ErrMismatch возвращается, если пароль не соответствует хешу.
	ErrMismatch = errors.New("password does not match")
	// ErrTooLong возвращается, если пароль длиннее MaxLength байт.
	ErrTooLong = errors.New("password is too long")
)

// dummyHash - bcrypt-хеш произвольной строки со стоимостью по умолчанию.
var dummyHash = mustHash("game-reviews-dummy-password")

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, ErrMismatch при несовпадении,
// иначе - ошибку разбора хеша.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CompareDummy тратит на проверку столько же времени, сколько CompareHash,
// но всегда завершается неудачей. Вызывается, когда пользователь не найден.
func CompareDummy(externalPassword string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(externalPassword))
}

func mustHash(s string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}
