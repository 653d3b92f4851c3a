package subject

import (
	"context"
	"errors"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service interface {
	CreateSubject(ctx context.Context, subject *Subject) (*Subject, error)
	GetAllSubjects(ctx context.Context, offset, limit int) ([]Subject, error)
	GetSubjectByID(ctx context.Context, id int) (*Subject, error)
	UpdateSubject(ctx context.Context, subject *Subject) error
	DeleteSubject(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateSubject(ctx context.Context, subject *Subject) (*Subject, error) {
	return s.repo.Create(ctx, subject)
}

func (s *service) GetAllSubjects(ctx context.Context, offset, limit int) ([]Subject, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

func (s *service) GetSubjectByID(ctx context.Context, id int) (*Subject, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateSubject(ctx context.Context, subject *Subject) error {
	if subject.ID <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Update(ctx, subject)
}

func (s *service) DeleteSubject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
