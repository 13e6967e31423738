package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/klsociety/governance-records-api/internal/constants"
	"github.com/klsociety/governance-records-api/internal/middleware"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/otp"
	"github.com/klsociety/governance-records-api/internal/repository"
	"github.com/klsociety/governance-records-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidOTP           = errors.New("invalid or expired one-time password")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles account registration, credential validation, and the
// password-reset flow.
type AuthService struct {
	userRepo   repository.UserRepository
	memberRepo repository.MemberRepository
	otpStore   *otp.Store
	jwtSecret  string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, memberRepo repository.MemberRepository, otpStore *otp.Store, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		otpStore:   otpStore,
		jwtSecret:  jwtSecret,
	}
}

// RegisterInput represents the required information to create an account.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a member-tier account. Member records themselves are
// created by an admin and linked to the account afterwards.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		UserType:     models.UserTypeMember,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the issued bearer token and the role summary the
// browser application renders its navigation from.
type LoginResult struct {
	Token string
	User  *models.User
	Roles []string
}

// ValidateUser verifies credentials and issues a bearer token.
func (s *AuthService) ValidateUser(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	result := &LoginResult{
		Token: token,
		User:  user,
	}

	if user.UserType == models.UserTypeMember {
		if member, err := s.memberRepo.FindByUserID(user.ID); err == nil {
			roles, err := s.memberRepo.ListActiveRoles(member.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list member roles: %w", err)
			}
			for _, role := range roles {
				result.Roles = append(result.Roles, role.Role.Name)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find member: %w", err)
		}
	}

	return result, nil
}

// ForgotPassword issues a one-time password for a username. Delivery is an
// operational concern; the code is returned to the caller for dispatch.
func (s *AuthService) ForgotPassword(username string) (string, error) {
	if _, err := s.userRepo.FindByUsername(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate one-time password: %w", err)
	}

	s.otpStore.Put(username, code)
	log.Printf("issued password reset code for %s", username)

	return code, nil
}

// ResetPassword sets a new password after validating the one-time password.
func (s *AuthService) ResetPassword(username, code, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	if !s.otpStore.Consume(username, code) {
		return ErrInvalidOTP
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ChangePassword sets a new password for an authenticated user after
// verifying the current one.
func (s *AuthService) ChangePassword(userID uint64, currentPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
