package service

import (
	"context"
	"errors"
	"strings"

	"institute-api/internal/model"
	"institute-api/internal/repository"
	"institute-api/pkg/apierror"
)

type SettingsService struct {
	settings *repository.SettingsRepository
	users    *repository.UserRepository
	activity activityRecorder
}

func NewSettingsService(settings *repository.SettingsRepository, users *repository.UserRepository, activity activityRecorder) *SettingsService {
	return &SettingsService{settings: settings, users: users, activity: activity}
}

// Get returns the user's settings, creating them from the default template
// on first read.
func (s *SettingsService) Get(ctx context.Context, userID string) (model.UserSettings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return s.settings.Upsert(ctx, userID, model.DefaultSettings())
	}
	if err != nil {
		return model.UserSettings{}, err
	}

	return settings, nil
}

// Patch merges the given sections into the stored settings. The merge is
// shallow: each top-level key in the patch replaces the stored section
// wholesale.
func (s *SettingsService) Patch(ctx context.Context, userID string, patch map[string]any, actor model.Actor) (model.UserSettings, error) {
	if len(patch) == 0 {
		return model.UserSettings{}, apierror.BadRequest("no settings provided", "")
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return model.UserSettings{}, err
	}

	for key, value := range patch {
		current.Data[key] = value
	}

	updated, err := s.settings.Upsert(ctx, userID, current.Data)
	if err != nil {
		return model.UserSettings{}, err
	}

	if _, err := s.activity.Record(ctx, actor, model.ActivityUpdate, "updated settings", "", "", nil); err != nil {
		return model.UserSettings{}, err
	}

	return updated, nil
}

// Profile assembles the user's profile from the account record plus the
// profile section of their settings.
func (s *SettingsService) Profile(ctx context.Context, userID string) (model.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}

	profile := model.UserProfile{
		Name:     user.FullName,
		Email:    user.Email,
		Role:     user.Role,
		JoinDate: user.CreatedAt.Format("2006-01-02"),
	}
	if profile.Name == "" {
		profile.Name = user.Username
	}

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}
	if extra, ok := settings.Data["profile"].(map[string]any); ok {
		profile.Phone, _ = extra["phone"].(string)
		profile.Department, _ = extra["department"].(string)
		profile.Avatar, _ = extra["avatar"].(string)
	}

	return profile, nil
}

// UpdateProfile applies the present fields only. Name and email live on the
// account; phone, department and avatar live in the settings blob.
func (s *SettingsService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest, actor model.Actor) (model.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}

	fullName := user.FullName
	email := user.Email
	if req.Name != nil {
		fullName = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email = strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return model.UserProfile{}, apierror.BadRequest("a valid email is required", email)
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, fullName, email); err != nil {
		return model.UserProfile{}, err
	}

	if req.Phone != nil || req.Department != nil || req.Avatar != nil {
		settings, err := s.Get(ctx, userID)
		if err != nil {
			return model.UserProfile{}, err
		}

		extra, _ := settings.Data["profile"].(map[string]any)
		if extra == nil {
			extra = map[string]any{}
		}
		if req.Phone != nil {
			extra["phone"] = *req.Phone
		}
		if req.Department != nil {
			extra["department"] = *req.Department
		}
		if req.Avatar != nil {
			extra["avatar"] = *req.Avatar
		}
		settings.Data["profile"] = extra

		if _, err := s.settings.Upsert(ctx, userID, settings.Data); err != nil {
			return model.UserProfile{}, err
		}
	}

	if _, err := s.activity.Record(ctx, actor, model.ActivityUpdate, "updated profile", "", "", nil); err != nil {
		return model.UserProfile{}, err
	}

	return s.Profile(ctx, userID)
}
