package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/realty-service/internal/domain"
)

const testSecret = "test-secret"

func newTestManager() *TokenManager {
	return NewTokenManager(testSecret, 7, 30, 7)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := newTestManager()

	kinds := []domain.SubjectKind{
		domain.SubjectKindSeeker,
		domain.SubjectKindAgent,
		domain.SubjectKindAdmin,
	}
	for _, kind := range kinds {
		token, _, err := tm.Issue("subject-1", kind)
		if err != nil {
			t.Fatalf("Issue(%s): %v", kind, err)
		}
		claims, err := tm.Verify(token)
		if err != nil {
			t.Fatalf("Verify(%s): %v", kind, err)
		}
		if claims.Kind != kind {
			t.Errorf("kind = %s, want %s", claims.Kind, kind)
		}
		if claims.SubjectID != "subject-1" {
			t.Errorf("subject = %s, want subject-1", claims.SubjectID)
		}
	}
}

func TestIssueRoleLifetimes(t *testing.T) {
	tm := newTestManager()

	cases := []struct {
		kind domain.SubjectKind
		ttl  time.Duration
	}{
		{domain.SubjectKindSeeker, 7 * 24 * time.Hour},
		{domain.SubjectKindAgent, 30 * 24 * time.Hour},
		{domain.SubjectKindAdmin, 7 * 24 * time.Hour},
	}
	for _, tc := range cases {
		_, exp, err := tm.Issue("subject-1", tc.kind)
		if err != nil {
			t.Fatalf("Issue(%s): %v", tc.kind, err)
		}
		want := time.Now().Add(tc.ttl)
		if diff := exp.Sub(want); diff < -time.Minute || diff > time.Minute {
			t.Errorf("%s expiry off by %v", tc.kind, diff)
		}
	}
}

func TestVerifyExpired(t *testing.T) {
	tm := newTestManager()

	claims := &Claims{
		SubjectID: "subject-1",
		Kind:      domain.SubjectKindAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "subject-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(signed); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify expired = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWrongSignature(t *testing.T) {
	other := NewTokenManager("another-secret", 7, 30, 7)
	token, _, err := other.Issue("subject-1", domain.SubjectKindSeeker)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tm := newTestManager()
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("Verify foreign token = %v, want ErrTokenSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tm := newTestManager()

	if _, err := tm.Verify("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("Verify garbage = %v, want ErrTokenMalformed", err)
	}
}

func TestVerifyUnknownKind(t *testing.T) {
	tm := newTestManager()

	claims := &Claims{
		SubjectID: "subject-1",
		Kind:      domain.SubjectKind("BOGUS"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(signed); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("Verify unknown kind = %v, want ErrTokenMalformed", err)
	}
}
