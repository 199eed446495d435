package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"todo-server/internal/utils/idgen"
	"todo-server/internal/utils/platformerrors"
)

const publicIDLength = 24

// Service implements account registration and credential verification.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService builds a user service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "user-service").Logger(),
	}
}

// Signup registers a new account. The email must not already be taken.
func (s *Service) Signup(ctx context.Context, email, password string, name *string) (*User, error) {
	email = NormalizeEmail(email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict,
			"email already registered",
			nil,
			"9c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f",
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to hash password",
			err,
			"0d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f6a",
		)
	}

	publicID, err := idgen.GenerateSecureID("user", publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to generate user ID",
			err,
			"1e3f4a5b-6c7d-8e9f-0a1b-2c3d4e5f6a7b",
		)
	}

	account := NewUser(publicID, email, string(hash), name)
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", account.PublicID).Msg("user registered")
	return account, nil
}

// Login verifies the credentials and returns the matching account.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	account, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, invalidCredentials(ctx)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials(ctx)
	}

	return account, nil
}

// GetByPublicID fetches an account by its public identifier.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}

func invalidCredentials(ctx context.Context) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeUnauthorized,
		"incorrect email or password",
		nil,
		"2f4a5b6c-7d8e-9f0a-1b2c-3d4e5f6a7b8c",
	)
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
