package group

import (
	"context"
	"errors"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrInvalidInput  = errors.New("invalid input")
)

type Service interface {
	CreateGroup(ctx context.Context, group *Group) (*Group, error)
	GetAllGroups(ctx context.Context, offset, limit int) ([]Group, error)
	GetGroupByID(ctx context.Context, id int) (*Group, error)
	UpdateGroup(ctx context.Context, group *Group) error
	DeleteGroup(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateGroup(ctx context.Context, group *Group) (*Group, error) {
	return s.repo.Create(ctx, group)
}

func (s *service) GetAllGroups(ctx context.Context, offset, limit int) ([]Group, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

func (s *service) GetGroupByID(ctx context.Context, id int) (*Group, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateGroup(ctx context.Context, group *Group) error {
	if group.ID <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Update(ctx, group)
}

func (s *service) DeleteGroup(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
