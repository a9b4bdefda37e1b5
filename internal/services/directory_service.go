package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edubase/school-service/internal/events"
	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/repositories"
)

type directoryService struct {
	repo              repositories.Repository
	publisher         events.EventPublisher
	logger            *slog.Logger
	allowSelfDemotion bool
}

func NewDirectoryService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, allowSelfDemotion bool) DirectoryService {
	return &directoryService{
		repo:              repo,
		publisher:         publisher,
		logger:            logger,
		allowSelfDemotion: allowSelfDemotion,
	}
}

// RegisterIfAbsent creates the directory record for a freshly authenticated
// identity. New records always start as students; only an admin promotes
// them afterwards.
func (s *directoryService) RegisterIfAbsent(ctx context.Context, userID, email, displayName string) (*models.User, error) {
	if userID == "" {
		return nil, NewValidationError("user_id", "user id is required", userID)
	}

	existing, err := s.repo.User().GetByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if displayName == "" {
		displayName = nameFromEmail(email)
	}
	user := &models.User{
		ID:          userID,
		DisplayName: displayName,
		Email:       email,
		Role:        models.RoleStudent,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		// A concurrent first sign-in won the insert; use its record.
		if repositories.IsDuplicateError(err) {
			return s.repo.User().GetByID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Registered new user", "user_id", userID, "email", email)
	return user, nil
}

func (s *directoryService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *directoryService) ListUsers(ctx context.Context, actor Actor) ([]models.User, error) {
	if !Can(actor, ActionUserList, Resource{}) {
		return nil, ErrPermissionDenied
	}

	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return derefUsers(users), nil
}

func (s *directoryService) ListUsersByRole(ctx context.Context, actor Actor, role models.UserRole) ([]models.User, error) {
	if !Can(actor, ActionUserList, Resource{}) {
		return nil, ErrPermissionDenied
	}
	if !models.ValidRole(role) {
		return nil, NewValidationError("role", "unknown role", role)
	}

	users, err := s.repo.User().ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return derefUsers(users), nil
}

// SetRole changes a directory record's role. Courses referencing the user
// are left untouched; a teacher demoted to student keeps dangling teacherId
// references, which listings resolve as "Unknown".
func (s *directoryService) SetRole(ctx context.Context, actor Actor, userID string, role models.UserRole) error {
	if !Can(actor, ActionUserSetRole, Resource{}) {
		return ErrPermissionDenied
	}
	if !models.ValidRole(role) {
		return NewValidationError("role", "unknown role", role)
	}
	if !s.allowSelfDemotion && actor.ID == userID && role != models.RoleAdmin {
		return NewValidationError("role", "admins may not demote themselves", role)
	}

	current, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if current.Role == role {
		return nil
	}

	if err := s.repo.User().UpdateRole(ctx, userID, role); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("Role changed", "user_id", userID, "old_role", current.Role, "new_role", role, "actor_id", actor.ID)
	s.publish(ctx, events.TopicUserRoleChanged, events.RoleChanged{
		UserID:  userID,
		OldRole: string(current.Role),
		NewRole: string(role),
	})
	return nil
}

func (s *directoryService) publish(ctx context.Context, topic string, payload interface{}) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.Warn("Failed to publish event", "topic", topic, "error", err)
	}
}

// nameFromEmail derives a display name from the local part of an address.
func nameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func derefUsers(users []*models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u)
	}
	return out
}
