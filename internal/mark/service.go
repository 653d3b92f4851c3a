package mark

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"
)

var (
	ErrMarkNotFound = errors.New("mark not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Producer publishes domain events (NATS or Kafka, depending on configuration).
type Producer interface {
	SendMessage(ctx context.Context, value interface{}) error
	Close() error
}

type Service interface {
	CreateMark(ctx context.Context, mark *Mark) (*Mark, error)
	GetAllMarks(ctx context.Context, offset, limit int) ([]Mark, error)
	GetMarkByID(ctx context.Context, id int) (*Mark, error)
	UpdateMark(ctx context.Context, mark *Mark) error
	DeleteMark(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	producer Producer // nil when messaging is disabled
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(repo Repository, producer Producer, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		repo:     repo,
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

func (s *service) CreateMark(ctx context.Context, mark *Mark) (*Mark, error) {
	// created_at defaults to the server clock when the caller omits it
	if mark.CreatedAt.IsZero() {
		mark.CreatedAt = time.Now().UTC()
	}

	created, err := s.repo.Create(ctx, mark)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMarkRecorded(ctx)
	s.publishCreated(ctx, created)

	return created, nil
}

// publishCreated notifies downstream consumers. A broker outage must not fail
// the request; the mark is already committed.
func (s *service) publishCreated(ctx context.Context, m *Mark) {
	if s.producer == nil {
		return
	}

	event := CreatedEvent{
		MarkID:    m.ID,
		StudentID: m.StudentID,
		SubjectID: m.SubjectID,
		TeacherID: m.TeacherID,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
	}
	if err := s.producer.SendMessage(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish mark.created event", "mark_id", m.ID, "error", err)
		return
	}
	s.metrics.RecordEventPublished(ctx, "mark.created")
}

func (s *service) GetAllMarks(ctx context.Context, offset, limit int) ([]Mark, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

func (s *service) GetMarkByID(ctx context.Context, id int) (*Mark, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateMark(ctx context.Context, mark *Mark) error {
	if mark.ID <= 0 {
		return ErrInvalidInput
	}
	if mark.CreatedAt.IsZero() {
		mark.CreatedAt = time.Now().UTC()
	}
	return s.repo.Update(ctx, mark)
}

func (s *service) DeleteMark(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
