package services

import (
	"errors"
	"fmt"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/notify"
	"inkwell/app/repositories"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles accounts, profiles and email verification
type UserService struct {
	userRepo repositories.UserRepository
	notifier notify.Notifier
	baseURL  string // prefix for verification links
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, notifier notify.Notifier, baseURL string) *UserService {
	return &UserService{userRepo: userRepo, notifier: notifier, baseURL: baseURL}
}

// RegisterResult carries the created account plus any non-fatal warning
type RegisterResult struct {
	User    *models.User `json:"user"`
	Warning string       `json:"warning,omitempty"`
}

// Register creates an inactive account and its profile in one transaction,
// then emails a verification link. The mail is best effort; a send failure
// comes back as a warning on an otherwise successful registration.
func (s *UserService) Register(username, email, password string, userType models.UserType) (*RegisterResult, error) {
	if len(password) < 8 {
		return nil, apperr.Invalid("password must be at least 8 characters", nil)
	}
	if userType == "" {
		userType = models.UserTypeReader
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Active:       false,
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, apperr.Invalid("invalid user", err)
	}

	profile := &models.Profile{
		UserType:          userType,
		VerificationToken: uuid.NewString(),
	}

	if err := s.userRepo.Create(user, profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.New(apperr.ErrDuplicate, "username or email already taken", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result := &RegisterResult{User: user}
	link := fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, profile.VerificationToken)
	body := fmt.Sprintf("Welcome %s!\n\nConfirm your email address by visiting:\n%s\n", username, link)
	if err := s.notifier.Send(email, "Verify your account", body); err != nil {
		log.WithError(err).WithField("user", username).
			Warn("[user] account created but verification email failed")
		result.Warning = "account created, but the verification email could not be sent"
	}
	return result, nil
}

// VerifyEmail activates the account behind a verification token. Tokens are
// single use; the second visit gets a not-found.
func (s *UserService) VerifyEmail(token string) (*models.User, error) {
	profile, err := s.userRepo.GetProfileByToken(token)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("invalid or expired verification token", err)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	profile.EmailVerified = true
	profile.VerificationToken = ""
	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Active = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	return user, nil
}

// Authenticate checks credentials and returns the account on success.
// Unverified accounts cannot log in.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.Unauthenticated("invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Unauthenticated("invalid credentials")
	}
	if !user.Active {
		return nil, apperr.New(apperr.ErrForbidden, "email address not verified", nil)
	}
	return user, nil
}

// ChangePassword swaps the password after re-checking the current one
func (s *UserService) ChangePassword(userID int, current, next string) error {
	if userID <= 0 {
		return apperr.Unauthenticated("authentication required")
	}
	if len(next) < 8 {
		return apperr.Invalid("password must be at least 8 characters", nil)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperr.Unauthenticated("unknown user")
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return apperr.Unauthenticated("invalid credentials")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// GetProfile returns a user's profile
func (s *UserService) GetProfile(userID int) (*models.Profile, error) {
	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("profile not found", err)
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile lets a user edit their own bio, picture and social link
func (s *UserService) UpdateProfile(userID int, bio, picture, socialMedia string) (*models.Profile, error) {
	if userID <= 0 {
		return nil, apperr.Unauthenticated("authentication required")
	}
	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("profile not found", err)
		}
		return nil, err
	}

	profile.Bio = bio
	profile.Picture = picture
	profile.SocialMedia = socialMedia
	if err := profile.Validate(); err != nil {
		return nil, apperr.Invalid("invalid profile", err)
	}
	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// ListAuthors returns the users who can publish, for the author directory
func (s *UserService) ListAuthors() ([]*models.User, error) {
	authors, err := s.userRepo.ListAuthors()
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}
