package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// AvailableDoctors lists doctors a patient can start a chat with.
func (s *UserService) AvailableDoctors(ctx context.Context) ([]*models.User, error) {
	return s.users.FindAvailableDoctors(ctx)
}

// SetAvailability toggles the caller's own flag. Doctors only.
func (s *UserService) SetAvailability(ctx context.Context, id primitive.ObjectID, role models.Role, available bool) (*models.User, error) {
	if role != models.RoleDoctor {
		return nil, apperrors.ErrForbidden
	}
	return s.users.SetAvailability(ctx, id, available)
}

func (s *UserService) SetLanguage(ctx context.Context, id primitive.ObjectID, language string) (*models.User, error) {
	if language == "" {
		return nil, apperrors.Validation("language", "language required")
	}
	return s.users.SetLanguage(ctx, id, language)
}
