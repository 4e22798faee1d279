package service

import (
	"context"
	"strings"
	"time"

	"institute-api/internal/model"
	"institute-api/internal/repository"
	"institute-api/pkg/apierror"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) ListFor(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListFor(ctx, userID)
}

func (s *NotificationService) Create(ctx context.Context, userID string, title string, message string) (model.Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Notification{}, apierror.BadRequest("title is required", "")
	}

	return s.repo.Create(ctx, model.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// SetRead updates the read flag on one of the user's notifications.
func (s *NotificationService) SetRead(ctx context.Context, id int64, userID string, read bool) (model.Notification, error) {
	return s.repo.SetRead(ctx, id, userID, read)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
