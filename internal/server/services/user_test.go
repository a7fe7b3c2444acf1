package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// --- helpers ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	allOut []*models.User
	allErr error

	gotEmail string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	u.CreatedAt = time.Now()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.gotEmail = email
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.allOut, nil
}

func newTestService(t *testing.T, repo *fakeUsersRepo) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BcryptCost:            4, // keep tests fast
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewUserService(repo, logger, cfg)
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newTestService(t, repo)

	user, err := s.Register(context.Background(), "John Doe", "John@Example.com", "password123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id, got %+v", user)
	}
	if user.Email != "john@example.com" {
		t.Fatalf("email must be normalized, got %q", user.Email)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", user.PasswordHash)
	}
	if !cryptox.VerifyPassword("password123", user.PasswordHash) {
		t.Fatalf("stored hash must verify against the original password")
	}
}

func TestRegister_Conflict(t *testing.T) {
	repo := &fakeUsersRepo{createErr: common.ErrorConflict}
	s := newTestService(t, repo)

	_, err := s.Register(context.Background(), "John Doe", "john@example.com", "password123")
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestRegister_RepoError(t *testing.T) {
	repo := &fakeUsersRepo{createErr: errors.New("db down")}
	s := newTestService(t, repo)

	_, err := s.Register(context.Background(), "John Doe", "john@example.com", "password123")
	if err == nil || errors.Is(err, common.ErrorConflict) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

// --- Login ---

func registeredUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := cryptox.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &models.User{ID: "u-1", Name: "John Doe", Email: "john@example.com", PasswordHash: hash}
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeUsersRepo{byEmailOut: registeredUser(t, "password123")}
	s := newTestService(t, repo)

	token, err := s.Login(context.Background(), "John@Example.com", "password123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if repo.gotEmail != "john@example.com" {
		t.Fatalf("lookup must use the normalized email, got %q", repo.gotEmail)
	}

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if userID != "u-1" {
		t.Fatalf("token subject mismatch: got %q", userID)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	repo := &fakeUsersRepo{byEmailErr: common.ErrorNotFound}
	s := newTestService(t, repo)

	_, err := s.Login(context.Background(), "ghost@example.com", "password123")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeUsersRepo{byEmailOut: registeredUser(t, "password123")}
	s := newTestService(t, repo)

	_, err := s.Login(context.Background(), "john@example.com", "wrongpassword")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_RepoError(t *testing.T) {
	repo := &fakeUsersRepo{byEmailErr: errors.New("connect: connection refused")}
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BcryptCost:            4,
	}
	var logs bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	s := NewUserService(repo, logger, cfg)

	_, err := s.Login(context.Background(), "john@example.com", "password123")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
	// The caller gets an opaque sentinel; the store failure detail must
	// still reach the server-side log.
	if !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("store failure not logged, got %q", logs.String())
	}
}

// --- lookups ---

func TestGetUser_NotFound(t *testing.T) {
	repo := &fakeUsersRepo{byIDErr: common.ErrorNotFound}
	s := newTestService(t, repo)

	_, err := s.GetUser(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListUsers_EmptyIsNotAnError(t *testing.T) {
	repo := &fakeUsersRepo{allOut: []*models.User{}}
	s := newTestService(t, repo)

	list, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %#v", list)
	}
}
