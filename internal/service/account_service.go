// Package service contains the application's business logic.
package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AccountService handles registration, credential checks and profile
// management.
type AccountService struct {
	userRepo repository.UserRepository
	policy   validation.PasswordPolicy
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateProfileInput carries partial profile changes. Nil fields are left
// untouched so the handler can pass through exactly what the client sent.
type UpdateProfileInput struct {
	UserID    uint
	FirstName *string
	LastName  *string
	Bio       *string
	AvatarURL *string
	Website   *string
}

func NewAccountService(userRepo repository.UserRepository, policy validation.PasswordPolicy) *AccountService {
	return &AccountService{userRepo: userRepo, policy: policy}
}

// Register validates the input, hashes the password and creates the user
// together with its profile. Validation failures come back as field errors so
// the client can attach them to the right form inputs.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	fields := map[string]string{}
	if err := validation.ValidateUsername(in.Username); err != nil {
		fields["username"] = err.Error()
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields["email"] = err.Error()
	}
	if err := s.policy.Validate(in.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError("registration failed", fields)
	}

	// Pre-checks give per-field messages; the unique indexes still close the
	// race between two concurrent registrations.
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		conflict := models.NewConflictError("username is already taken")
		conflict.Fields = map[string]string{"username": "username is already taken"}
		return nil, conflict
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		conflict := models.NewConflictError("email is already registered")
		conflict.Fields = map[string]string{"email": "email is already registered"}
		return nil, conflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username and password pair. Unknown usernames and
// wrong passwords produce the same error so the response does not reveal
// which accounts exist.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("invalid credentials")
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.userRepo.GetProfile(ctx, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.userRepo.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewFieldValidationError("profile update failed",
				map[string]string{"bio": err.Error()})
		}
		profile.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = *in.AvatarURL
	}
	if in.Website != nil {
		profile.Website = *in.Website
	}
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	if in.FirstName != nil || in.LastName != nil {
		user := &profile.User
		if in.FirstName != nil {
			user.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			user.LastName = *in.LastName
		}
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// DeleteAccount removes the user and, with it, their profile and every post
// they authored. The repository runs the whole cascade in one transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
