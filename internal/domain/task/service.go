package task

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"todo-server/internal/utils/platformerrors"
)

// Service implements task CRUD with per-user ownership checks. Lookups
// distinguish a missing task from one owned by a different user; callers
// that must not reveal foreign IDs collapse the two before responding.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService builds a task service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "task-service").Logger(),
	}
}

// Create validates and stores a new task for the user.
func (s *Service) Create(ctx context.Context, userID uint, title string, description *string) (*Task, error) {
	title, err := normalizeTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	description, err = normalizeDescription(ctx, description)
	if err != nil {
		return nil, err
	}

	t := &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info().Uint("task_id", t.ID).Uint("user_id", userID).Msg("task created")
	return t, nil
}

// List returns the user's tasks newest-first, optionally narrowed by
// completion state.
func (s *Service) List(ctx context.Context, userID uint, filter StatusFilter) ([]Task, error) {
	if filter == "" {
		filter = StatusAll
	}
	if !filter.Valid() {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"status must be 'all', 'pending', or 'completed'",
			nil,
			"3b5c6d7e-8f9a-0b1c-2d3e-4f5a6b7c8d9e",
		)
	}
	return s.repo.ListByUser(ctx, userID, filter)
}

// Get fetches one task, verifying the caller owns it.
func (s *Service) Get(ctx context.Context, userID, taskID uint) (*Task, error) {
	return s.find(ctx, userID, taskID)
}

// Update applies a partial update. An empty update only touches the
// modification timestamp.
func (s *Service) Update(ctx context.Context, userID, taskID uint, fields UpdateFields) (*Task, error) {
	t, err := s.find(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		title, err := normalizeTitle(ctx, *fields.Title)
		if err != nil {
			return nil, err
		}
		t.Title = title
	}
	if fields.Description != nil {
		desc, err := normalizeDescription(ctx, fields.Description)
		if err != nil {
			return nil, err
		}
		t.Description = desc
	}
	if fields.Completed != nil {
		t.Completed = *fields.Completed
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the task and returns it as it was stored.
func (s *Service) Delete(ctx context.Context, userID, taskID uint) (*Task, error) {
	t, err := s.find(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info().Uint("task_id", taskID).Uint("user_id", userID).Msg("task deleted")
	return t, nil
}

// ToggleComplete flips the completion flag and returns the updated task.
func (s *Service) ToggleComplete(ctx context.Context, userID, taskID uint) (*Task, error) {
	t, err := s.find(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	t.Completed = !t.Completed
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) find(ctx context.Context, userID, taskID uint) (*Task, error) {
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("task %d not found", taskID),
				err,
				"4f5a6b7c-8d9e-0f1a-2b3c-4d5e6f7a8b9c",
			)
		}
		return nil, err
	}
	if t.UserID != userID {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			fmt.Sprintf("task %d belongs to another user", taskID),
			nil,
			"5a6b7c8d-9e0f-1a2b-3c4d-5e6f7a8b9c0d",
		)
	}
	return t, nil
}

func normalizeTitle(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", validationError(ctx, "title is required and cannot be empty", "6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e")
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return "", validationError(ctx, fmt.Sprintf("title must be %d characters or less", TitleMaxLen), "7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f")
	}
	return title, nil
}

// normalizeDescription trims the description. A blank description clears
// the field.
func normalizeDescription(ctx context.Context, description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > DescriptionMaxLen {
		return nil, validationError(ctx, fmt.Sprintf("description must be %d characters or less", DescriptionMaxLen), "8d9e0f1a-2b3c-4d5e-6f7a-8b9c0d1e2f3a")
	}
	return &trimmed, nil
}

func validationError(ctx context.Context, message, uuid string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, message, nil, uuid)
}
