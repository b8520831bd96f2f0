package service

import (
	"context"
	"errors"

	"community/internal/models"
	"community/internal/repository"
	"community/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Nickname string
	ImageID  *uint
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Nickname != "" && in.Nickname != user.Nickname {
		if err := validation.ValidateNickname(in.Nickname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		taken, err := s.userRepo.ExistsActiveByNickname(ctx, in.Nickname)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("Nickname already in use")
		}
		user.Nickname = in.Nickname
	}
	if in.ImageID != nil {
		user.ImageID = in.ImageID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	user, err := s.userRepo.GetByIDWithPassword(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", in.UserID)
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)) != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, in.UserID, string(hash))
}

// DeleteAccount soft-deletes the user. The row survives for audit but the
// email and nickname immediately become available to new signups, since
// uniqueness is only enforced over active rows.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
