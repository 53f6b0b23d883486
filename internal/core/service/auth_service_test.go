package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

func seedCredentials(t *testing.T, repo *stubUserRepo, login, password string, roles []string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return repo.seed(domain.User{
		Login:        login,
		PasswordHash: string(hash),
		Email:        login + "@example.com",
		Roles:        roles,
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedCredentials(t, repo, "alice", "s3cret", []string{domain.RoleAdministrator})
	svc := NewAuthService(repo, "test-secret", 0)

	token, user, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	// The token must carry the subject, login and roles claims.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if int64(claims["sub"].(float64)) != seeded.ID || claims["login"] != "alice" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	roles, ok := claims["roles"].([]any)
	if !ok || len(roles) != 1 || roles[0] != domain.RoleAdministrator {
		t.Fatalf("roles claim missing: %v", claims["roles"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedCredentials(t, repo, "alice", "s3cret", nil)
	svc := NewAuthService(repo, "test-secret", 0)

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownLogin(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", 0)

	// Unknown logins are indistinguishable from bad passwords.
	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", 0)
	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
