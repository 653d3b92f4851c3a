package person

import (
	"context"
	"errors"
)

var (
	ErrPersonNotFound = errors.New("person not found")
	ErrInvalidInput   = errors.New("invalid input")
)

type Service interface {
	CreatePerson(ctx context.Context, person *Person) (*Person, error)
	GetAllPeople(ctx context.Context, offset, limit int) ([]Person, error)
	GetPersonByID(ctx context.Context, id int) (*Person, error)
	UpdatePerson(ctx context.Context, person *Person) error
	DeletePerson(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreatePerson(ctx context.Context, person *Person) (*Person, error) {
	if person.Type != TypeStudent && person.Type != TypeTeacher {
		return nil, ErrInvalidInput
	}
	return s.repo.Create(ctx, person)
}

func (s *service) GetAllPeople(ctx context.Context, offset, limit int) ([]Person, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

func (s *service) GetPersonByID(ctx context.Context, id int) (*Person, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdatePerson(ctx context.Context, person *Person) error {
	if person.ID <= 0 {
		return ErrInvalidInput
	}
	if person.Type != TypeStudent && person.Type != TypeTeacher {
		return ErrInvalidInput
	}
	return s.repo.Update(ctx, person)
}

func (s *service) DeletePerson(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
