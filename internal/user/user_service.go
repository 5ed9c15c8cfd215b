package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/chaitanyakotagiri27/SecureShift/internal/common"
	"github.com/chaitanyakotagiri27/SecureShift/internal/config"
	"github.com/chaitanyakotagiri27/SecureShift/internal/dbmysql"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type UserService interface {
	Register(ctx context.Context, name, email, password, role, phone string) (*dbmysql.User, string, error)
	Login(ctx context.Context, email, password string) (*dbmysql.User, string, error)
	Profile(ctx context.Context, userID string) (*dbmysql.User, error)
	UpdateProfile(ctx context.Context, userID, name, email, phone string) (*dbmysql.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Deactivate(ctx context.Context, userID string) error

	// Admin directory surface
	ListUsers(ctx context.Context, filter UserFilter) ([]*dbmysql.User, int64, error)
	UserByID(ctx context.Context, userID string) (*dbmysql.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	repo     UserRepository
	tokenTTL time.Duration
}

func NewUserService(cfg *config.Config, repo UserRepository) UserService {
	ttl := 24 * time.Hour
	if cfg != nil && cfg.Auth.TokenTTLHours > 0 {
		ttl = time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	}
	return &userService{repo: repo, tokenTTL: ttl}
}

// Register creates a guard or employer account and returns it with a
// fresh token. Admin accounts are provisioned out of band.
func (s *userService) Register(ctx context.Context, name, email, password, role, phone string) (*dbmysql.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := common.ValidateName(name); err != nil {
		return nil, "", status.Error(codes.InvalidArgument, err.Error())
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", status.Error(codes.InvalidArgument, err.Error())
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", status.Error(codes.InvalidArgument, err.Error())
	}
	if err := common.ValidatePhone(phone); err != nil {
		return nil, "", status.Error(codes.InvalidArgument, err.Error())
	}
	if role != common.RoleGuard && role != common.RoleEmployer {
		return nil, "", status.Error(codes.InvalidArgument, "role must be guard or employer")
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", storeError(err)
	}
	if exists {
		return nil, "", status.Error(codes.AlreadyExists, "email already registered")
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", status.Error(codes.Internal, "failed to hash password")
	}

	user := &dbmysql.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		Phone:        phone,
		Status:       common.StatusActive,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", storeError(err)
	}

	token, err := common.GenerateToken(user.UserID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", status.Error(codes.Internal, "failed to generate token")
	}

	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*dbmysql.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", status.Error(codes.InvalidArgument, "email and password required")
	}

	user, err := s.repo.UserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", status.Error(codes.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		return nil, "", storeError(err)
	}

	if user.Status != common.StatusActive {
		return nil, "", status.Error(codes.PermissionDenied, "account is deactivated")
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", status.Error(codes.Unauthenticated, "invalid email or password")
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, "", storeError(err)
	}

	token, err := common.GenerateToken(user.UserID, user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", status.Error(codes.Internal, "failed to generate token")
	}

	return user, token, nil
}

func (s *userService) Profile(ctx context.Context, userID string) (*dbmysql.User, error) {
	return s.UserByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID, name, email, phone string) (*dbmysql.User, error) {
	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if err := common.ValidateName(name); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		user.Name = strings.TrimSpace(name)
	}

	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		if err := common.ValidateEmail(email); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		if email != user.Email {
			exists, err := s.repo.EmailExists(ctx, email)
			if err != nil {
				return nil, storeError(err)
			}
			if exists {
				return nil, status.Error(codes.AlreadyExists, "email already registered")
			}
			user.Email = email
		}
	}

	if phone != "" {
		if err := common.ValidatePhone(phone); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		user.Phone = phone
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, storeError(err)
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := common.CheckPassword(currentPassword, user.PasswordHash); err != nil {
		return status.Error(codes.PermissionDenied, "current password is incorrect")
	}

	if err := common.ValidatePassword(newPassword); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	hashed, err := common.HashPassword(newPassword)
	if err != nil {
		return status.Error(codes.Internal, "failed to hash password")
	}

	user.PasswordHash = hashed
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return storeError(err)
	}

	return nil
}

func (s *userService) Deactivate(ctx context.Context, userID string) error {
	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Status = common.StatusDeactivated
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return storeError(err)
	}

	return nil
}

func (s *userService) ListUsers(ctx context.Context, filter UserFilter) ([]*dbmysql.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Role != "" && !common.ValidRole(filter.Role) {
		return nil, 0, status.Error(codes.InvalidArgument, "unknown role filter")
	}

	users, total, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return users, total, nil
}

func (s *userService) UserByID(ctx context.Context, userID string) (*dbmysql.User, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, status.Error(codes.NotFound, "user not found")
	}
	if err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	err := s.repo.DeleteUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return status.Error(codes.NotFound, "user not found")
	}
	if err != nil {
		return storeError(err)
	}
	return nil
}

func storeError(err error) error {
	return status.Errorf(codes.Unavailable, "user store unavailable: %v", err)
}
