// Package accounts provides local sign-up and credential checks backing the identity directory.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"

	"github.com/memohai/chirp/internal/db"
	"github.com/memohai/chirp/internal/db/sqlc"
	"github.com/memohai/chirp/internal/identity"
)

// Password bounds in bytes. bcrypt rejects anything past MaxPasswordLength.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Errors returned by account operations.
var (
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidImageURL    = errors.New("invalid profile image url")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
)

// Queries is the subset of sqlc queries used by the service.
type Queries interface {
	CreateUser(ctx context.Context, arg sqlc.CreateUserParams) (sqlc.User, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (sqlc.User, error)
	GetUserByUsername(ctx context.Context, username pgtype.Text) (sqlc.User, error)
	UpdateUserLastLogin(ctx context.Context, id pgtype.UUID) (sqlc.User, error)
}

// Service provides account registration and login.
type Service struct {
	queries Queries
	logger  *slog.Logger
}

// NewService creates a new accounts service.
func NewService(log *slog.Logger, queries Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "accounts")),
	}
}

// Register validates the request, hashes the password and stores a new account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Account, error) {
	if s.queries == nil {
		return Account{}, errors.New("account queries not configured")
	}
	username := identity.NormalizeUsername(req.Username)
	if err := identity.ValidateUsername(username); err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrInvalidUsername, err)
	}
	if len(req.Password) < MinPasswordLength {
		return Account{}, fmt.Errorf("%w: must be at least %d characters", ErrInvalidPassword, MinPasswordLength)
	}
	if len(req.Password) > MaxPasswordLength {
		return Account{}, fmt.Errorf("%w: must be at most %d bytes", ErrInvalidPassword, MaxPasswordLength)
	}
	imageURL := strings.TrimSpace(req.ProfileImageURL)
	if imageURL != "" {
		parsed, err := url.Parse(imageURL)
		if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
			return Account{}, ErrInvalidImageURL
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		Username:        pgtype.Text{String: username, Valid: true},
		PasswordHash:    string(hashed),
		ProfileImageUrl: imageURL,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Account{}, ErrUsernameTaken
		}
		return Account{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("account registered", slog.String("user_id", db.UUIDToString(row.ID)), slog.String("username", username))
	return toAccount(row), nil
}

// Login authenticates by username and password.
func (s *Service) Login(ctx context.Context, username, password string) (Account, error) {
	if s.queries == nil {
		return Account{}, errors.New("account queries not configured")
	}
	username = identity.NormalizeUsername(username)
	if username == "" || password == "" {
		return Account{}, ErrInvalidCredentials
	}
	row, err := s.queries.GetUserByUsername(ctx, pgtype.Text{String: username, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	if touched, err := s.queries.UpdateUserLastLogin(ctx, row.ID); err != nil {
		s.logger.Warn("touch last login failed", slog.Any("error", err))
	} else {
		row = touched
	}
	return toAccount(row), nil
}

// Get returns an account by user id.
func (s *Service) Get(ctx context.Context, userID string) (Account, error) {
	if s.queries == nil {
		return Account{}, errors.New("account queries not configured")
	}
	pgID, err := db.ParseUUID(userID)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	row, err := s.queries.GetUserByID(ctx, pgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return toAccount(row), nil
}

func toAccount(row sqlc.User) Account {
	return Account{
		ID:              db.UUIDToString(row.ID),
		Username:        db.TextToString(row.Username),
		ProfileImageURL: row.ProfileImageUrl,
		CreatedAt:       db.TimeFromPg(row.CreatedAt),
		LastLoginAt:     db.TimeFromPg(row.LastLoginAt),
	}
}
