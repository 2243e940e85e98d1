package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/realty-service/internal/domain"
)

// Verification failure taxonomy. Verify never touches storage; a forged or
// expired token is rejected before any database round trip.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
)

// TokenTTLs holds per-kind token lifetimes.
type TokenTTLs struct {
	Seeker time.Duration
	Agent  time.Duration
	Admin  time.Duration
}

// TokenManager issues and verifies JWT tokens carrying exactly one subject.
type TokenManager struct {
	secret []byte
	ttls   TokenTTLs
}

// NewTokenManager builds a new manager. TTL days at or below zero fall back
// to the standard lifetimes (seeker/admin 7d, agent 30d).
func NewTokenManager(secret string, seekerDays, agentDays, adminDays int) *TokenManager {
	if seekerDays <= 0 {
		seekerDays = 7
	}
	if agentDays <= 0 {
		agentDays = 30
	}
	if adminDays <= 0 {
		adminDays = 7
	}
	day := 24 * time.Hour
	return &TokenManager{
		secret: []byte(secret),
		ttls: TokenTTLs{
			Seeker: time.Duration(seekerDays) * day,
			Agent:  time.Duration(agentDays) * day,
			Admin:  time.Duration(adminDays) * day,
		},
	}
}

// Claims describes the JWT payload.
type Claims struct {
	SubjectID string             `json:"sub"`
	Kind      domain.SubjectKind `json:"kind"`
	jwt.RegisteredClaims
}

// Issue builds and signs a JWT for the subject with the kind's lifetime.
func (tm *TokenManager) Issue(subjectID string, kind domain.SubjectKind) (string, time.Time, error) {
	ttl, err := tm.ttlFor(kind)
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the token and returns its claims. Pure computation, no
// side effects.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignature
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.SubjectID == "" {
		return nil, ErrTokenMalformed
	}
	switch claims.Kind {
	case domain.SubjectKindSeeker, domain.SubjectKindAgent, domain.SubjectKindAdmin:
	default:
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func (tm *TokenManager) ttlFor(kind domain.SubjectKind) (time.Duration, error) {
	switch kind {
	case domain.SubjectKindSeeker:
		return tm.ttls.Seeker, nil
	case domain.SubjectKindAgent:
		return tm.ttls.Agent, nil
	case domain.SubjectKindAdmin:
		return tm.ttls.Admin, nil
	default:
		return 0, errors.New("unknown subject kind")
	}
}
