package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rivarora/hospital/models"
	"github.com/Rivarora/hospital/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for users
type UserService struct {
	userRepo *repository.UserRepository
}

// UserServiceOption is a functional option for UserService
type UserServiceOption func(*UserService)

// UserWithRepository sets the user repository
func UserWithRepository(repo *repository.UserRepository) UserServiceOption {
	return func(s *UserService) {
		s.userRepo = repo
	}
}

// NewUserService creates a new user service
func NewUserService(opts ...UserServiceOption) *UserService {
	s := &UserService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUserRequest represents a signup request
type CreateUserRequest struct {
	Name     string
	Email    string
	Age      *int
	Password string // optional
}

// CreateUserResult represents the result of creating a user
type CreateUserResult struct {
	User *models.User
}

// CreateUser registers a new user with a zero balance and the baseline
// health score. The password is optional; when supplied it is stored as a
// bcrypt hash.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", models.ErrValidation)
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 150) {
		return nil, fmt.Errorf("%w: age must be between 0 and 150", models.ErrValidation)
	}

	user := &models.User{
		Name:  name,
		Email: email,
		Age:   req.Age,
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		user.PasswordHash = &hashStr
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &CreateUserResult{User: user}, nil
}

// GetUserRequest represents a request to fetch a user
type GetUserRequest struct {
	ID uuid.UUID
}

// GetUserResult represents the result of fetching a user
type GetUserResult struct {
	User *models.User
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, req GetUserRequest) (*GetUserResult, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	user, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	return &GetUserResult{User: user}, nil
}

// ListUsersRequest represents a request to list users
type ListUsersRequest struct {
	Limit int
}

// ListUsersResult represents the result of listing users
type ListUsersResult struct {
	Users []*models.User
}

// ListUsers lists users, newest first
func (s *UserService) ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResult, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	users, err := s.userRepo.List(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	return &ListUsersResult{Users: users}, nil
}
