package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/validator"
)

func newAuthTestService(t *testing.T) (AuthService, *mockRepository) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		ID:           42,
		Name:         "Grace Lindqvist",
		Email:        "grace@riverside.edu",
		PasswordHash: string(hash),
		Role:         models.RoleTeacher,
	}
	repo := &mockRepository{
		users: &mockUserRepository{
			byEmail: map[string]*models.User{user.Email: user},
			byID:    map[uint]*models.User{user.ID: user},
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewAuthService(repo, logger, validator.New(), "test-secret", time.Hour)
	return service, repo
}

func TestAuthService_Login(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	resp, err := service.Login(ctx, &models.LoginRequest{
		Email:    "grace@riverside.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if resp.Token == "" {
		t.Error("token should not be empty")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", resp.ExpiresIn)
	}
	if resp.User.PasswordHash != "" {
		t.Error("password hash leaked in login response")
	}

	claims, err := service.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken failed on a freshly issued token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims user id = %d, want 42", claims.UserID)
	}
	if claims.Role != models.RoleTeacher {
		t.Errorf("claims role = %q, want teacher", claims.Role)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "grace@riverside.edu", "wrong"},
		{"unknown email", "nobody@riverside.edu", "correct-horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(ctx, &models.LoginRequest{Email: tt.email, Password: tt.password})
			// Both cases return the same error so responses do not reveal
			// which emails exist.
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestAuthService_ParseTokenRejectsTampering(t *testing.T) {
	service, _ := newAuthTestService(t)

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "grace@riverside.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	tampered := resp.Token[:len(resp.Token)-2] + "xx"
	if _, err := service.ParseToken(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}

	if _, err := service.ParseToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	service, _ := newAuthTestService(t)
	ctx := context.Background()

	user, err := service.GetCurrentUser(ctx, 42)
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if user.Email != "grace@riverside.edu" {
		t.Errorf("got email %q", user.Email)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked")
	}

	if _, err := service.GetCurrentUser(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
