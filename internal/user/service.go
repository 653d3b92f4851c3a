package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLoginExists  = errors.New("login already registered")
	ErrInvalidInput = errors.New("invalid input")
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	GetAllUsers(ctx context.Context, offset, limit int) ([]User, error)
	GetUserByID(ctx context.Context, id int) (*User, error)
	UpdateUser(ctx context.Context, id int, req UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	existing, err := s.repo.GetByLogin(ctx, req.Login)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}

	user := &User{
		Login:        req.Login,
		PasswordHash: string(hash),
		Role:         role,
		PersonID:     req.PersonID,
	}
	return s.repo.Create(ctx, user)
}

func (s *service) GetAllUsers(ctx context.Context, offset, limit int) ([]User, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

func (s *service) GetUserByID(ctx context.Context, id int) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateUser(ctx context.Context, id int, req UpdateUserRequest) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Login != nil && *req.Login != user.Login {
		existing, err := s.repo.GetByLogin(ctx, *req.Login)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrLoginExists
		}
		user.Login = *req.Login
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.PersonID != nil {
		user.PersonID = req.PersonID
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) DeleteUser(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
