package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
)

func testAccount() *model.Account {
	return &model.Account{
		ID:             7,
		NombreCompleto: "Ana Pérez",
		Correo:         "ana@policia.gob.ec",
		Usuario:        "aperez",
	}
}

func TestNewIssuer_Validation(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); err == nil {
		t.Error("ожидается ошибка для пустого секрета")
	}
	if _, err := NewIssuer("s", 0); err == nil {
		t.Error("ожидается ошибка для нулевого TTL")
	}
}

func TestIssueParse(t *testing.T) {
	iss, err := NewIssuer("secret", 2*time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	token, err := iss.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ID != 7 || claims.Usuario != "aperez" || claims.Nombre != "Ana Pérez" || claims.Correo != "ana@policia.gob.ec" {
		t.Errorf("claims = %+v", claims)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 2*time.Hour {
		t.Errorf("exp - iat = %s, ожидается 2h", ttl)
	}
}

func TestParse_Expired(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	base := time.Now()
	iss.now = func() time.Time { return base }
	token, _ := iss.Issue(testAccount())

	iss.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, err := iss.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, ожидается ErrInvalidToken", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	a, _ := NewIssuer("secret-a", time.Hour)
	b, _ := NewIssuer("secret-b", time.Hour)

	token, _ := a.Issue(testAccount())
	if _, err := b.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, ожидается ErrInvalidToken", err)
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)

	claims := Claims{ID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := iss.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("HS512: err = %v, ожидается ErrInvalidToken", err)
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := iss.Parse(none); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("none: err = %v, ожидается ErrInvalidToken", err)
	}
}

func TestParse_RequiresExpiration(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: 1}).SignedString([]byte("secret"))
	if _, err := iss.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, ожидается ErrInvalidToken", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	if _, err := iss.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, ожидается ErrInvalidToken", err)
	}
}
