package apitest

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims представляет JWT claims access токена
type accessClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// tokenIssuer выпускает и проверяет access токены
type tokenIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newTokenIssuer(accessTTL time.Duration) *tokenIssuer {
	return &tokenIssuer{secret: randomBytes(32), accessTTL: accessTTL}
}

// issue создает access token для пользователя
func (ti *tokenIssuer) issue(userID int64) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        base64.RawURLEncoding.EncodeToString(randomBytes(8)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// validate проверяет подпись и срок действия токена
func (ti *tokenIssuer) validate(tokenString string) (*accessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// rotate меняет ключ подписи: все выданные токены становятся недействительными
func (ti *tokenIssuer) rotate() {
	ti.secret = randomBytes(32)
}

func newRefreshToken() string {
	return base64.URLEncoding.EncodeToString(randomBytes(32))
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	// crypto/rand.Read не возвращает ошибку начиная с Go 1.24
	_, _ = rand.Read(b)
	return b
}
