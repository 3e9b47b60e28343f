package token

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EgorLis/ipfs-drive/internal/domain"
)

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func New(secret string, issuer string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Id пользователя живёт в sub, jti — в стандартном ID; кастомное поле
// одно — login, для логов и контекста запроса.
type driveClaims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

var _ domain.TokenManager = (*Manager)(nil)

// Issue выпускает HS256-токен и возвращает доменные клеймы.
func (m *Manager) Issue(_ context.Context, userID domain.UserID, login string) (domain.Token, domain.TokenClaims, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	cl := driveClaims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
	if err != nil {
		return "", domain.TokenClaims{}, err
	}

	return raw, domain.TokenClaims{
		JTI:       jti,
		UserID:    userID,
		Login:     login,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}, nil
}

// Parse валидирует подпись, сроки и издателя.
func (m *Manager) Parse(_ context.Context, raw domain.Token) (domain.TokenClaims, error) {
	var out driveClaims
	tkn, err := jwt.ParseWithClaims(string(raw), &out, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return domain.TokenClaims{}, err
	}
	if !tkn.Valid {
		return domain.TokenClaims{}, jwt.ErrTokenInvalidClaims
	}

	uid, err := uuid.Parse(out.Subject)
	if err != nil {
		return domain.TokenClaims{}, jwt.ErrTokenInvalidClaims
	}

	cl := domain.TokenClaims{
		JTI:    out.ID,
		UserID: uid,
		Login:  out.Login,
	}
	if out.IssuedAt != nil {
		cl.IssuedAt = out.IssuedAt.Time
	}
	if out.ExpiresAt != nil {
		cl.ExpiresAt = out.ExpiresAt.Time
	}
	return cl, nil
}
