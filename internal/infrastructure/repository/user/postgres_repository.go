package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/database/entities"
	"todo-server/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for user accounts.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user record and backfills generated fields.
func (r *PostgresRepository) Create(ctx context.Context, account *domain.User) error {
	entity := entities.NewSchemaUser(account)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
			"1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d",
		)
	}
	*account = *entity.EtoD()
	return nil
}

// FindByEmail fetches a user by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"user not found",
				err,
				"2b3c4d5e-6f7a-4b8c-9d0e-1f2a3b4c5d6e",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by email",
			err,
			"3c4d5e6f-7a8b-4c9d-0e1f-2a3b4c5d6e7f",
		)
	}
	return entity.EtoD(), nil
}

// FindByPublicID fetches a user by its public identifier.
func (r *PostgresRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"user not found",
				err,
				"4d5e6f7a-8b9c-4d0e-1f2a-3b4c5d6e7f8a",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by public id",
			err,
			"5e6f7a8b-9c0d-4e1f-2a3b-4c5d6e7f8a9b",
		)
	}
	return entity.EtoD(), nil
}
