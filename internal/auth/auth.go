// Пакет auth — выпуск и проверка JWT (HS256) для сотрудников панели.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
)

// ErrInvalidToken — токен невалиден, подделан или просрочен.
var ErrInvalidToken = errors.New("невалидный токен")

// Claims — содержимое токена. Помещается в контекст запроса middleware.
type Claims struct {
	// ID — id учётной записи (usuarios_admin.id)
	ID      int64  `json:"id"`
	Usuario string `json:"usuario"`
	Nombre  string `json:"nombre"`
	Correo  string `json:"correo"`
	jwt.RegisteredClaims
}

// Issuer выпускает и проверяет токены с общим секретом.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	// now подменяется в тестах
	now func() time.Time
}

// NewIssuer создаёт Issuer. Пустой секрет — ошибка.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("пустой секрет JWT")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("некорректное время жизни токена: %s", ttl)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue выпускает подписанный токен для учётной записи.
func (i *Issuer) Issue(a *model.Account) (string, error) {
	now := i.now()
	claims := Claims{
		ID:      a.ID,
		Usuario: a.Usuario,
		Nombre:  a.NombreCompleto,
		Correo:  a.Correo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return token, nil
}

// Parse проверяет подпись и срок действия токена.
// Принимается только HS256; токен без exp отклоняется.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID <= 0 {
		return nil, fmt.Errorf("%w: отсутствует id", ErrInvalidToken)
	}
	return claims, nil
}
