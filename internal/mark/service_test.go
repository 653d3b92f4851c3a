package mark_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/mark"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	marks  map[int]*mark.Mark
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{marks: make(map[int]*mark.Mark), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, m *mark.Mark) (*mark.Mark, error) {
	m.ID = f.nextID
	f.nextID++
	f.marks[m.ID] = m
	return m, nil
}

func (f *fakeRepo) GetAll(_ context.Context, _, _ int) ([]mark.Mark, error) {
	var all []mark.Mark
	for _, m := range f.marks {
		all = append(all, *m)
	}
	return all, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int) (*mark.Mark, error) {
	if m, ok := f.marks[id]; ok {
		return m, nil
	}
	return nil, mark.ErrMarkNotFound
}

func (f *fakeRepo) Update(_ context.Context, m *mark.Mark) error {
	if _, ok := f.marks[m.ID]; !ok {
		return mark.ErrMarkNotFound
	}
	f.marks[m.ID] = m
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.marks[id]; !ok {
		return mark.ErrMarkNotFound
	}
	delete(f.marks, id)
	return nil
}

type fakeProducer struct {
	sent []interface{}
	err  error
}

func (f *fakeProducer) SendMessage(_ context.Context, value interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, value)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func newTestService(producer mark.Producer) mark.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return mark.NewService(newFakeRepo(), producer, metrics.NewMock(), logger)
}

func TestCreateMark(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsCreatedAt", func(t *testing.T) {
		service := newTestService(nil)

		before := time.Now().UTC()
		created, err := service.CreateMark(ctx, &mark.Mark{StudentID: 1, SubjectID: 1, TeacherID: 2, Value: 9})
		require.NoError(t, err)

		assert.False(t, created.CreatedAt.Before(before))
		assert.False(t, created.CreatedAt.After(time.Now().UTC()))
	})

	t.Run("KeepsExplicitCreatedAt", func(t *testing.T) {
		service := newTestService(nil)

		when := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
		created, err := service.CreateMark(ctx, &mark.Mark{StudentID: 1, SubjectID: 1, TeacherID: 2, Value: 9, CreatedAt: when})
		require.NoError(t, err)

		assert.Equal(t, when, created.CreatedAt)
	})

	t.Run("PublishesCreatedEvent", func(t *testing.T) {
		producer := &fakeProducer{}
		service := newTestService(producer)

		created, err := service.CreateMark(ctx, &mark.Mark{StudentID: 1, SubjectID: 2, TeacherID: 3, Value: 7})
		require.NoError(t, err)

		require.Len(t, producer.sent, 1)
		event, ok := producer.sent[0].(mark.CreatedEvent)
		require.True(t, ok)
		assert.Equal(t, created.ID, event.MarkID)
		assert.Equal(t, 1, event.StudentID)
		assert.Equal(t, 2, event.SubjectID)
		assert.Equal(t, 3, event.TeacherID)
		assert.Equal(t, 7, event.Value)
	})

	// The value column carries no range constraint; the schema accepts any
	// integer, including nonsense.
	t.Run("ValueRangeUnconstrained", func(t *testing.T) {
		service := newTestService(nil)

		for _, value := range []int{-5, 0, 1000000} {
			created, err := service.CreateMark(ctx, &mark.Mark{StudentID: 1, SubjectID: 1, TeacherID: 2, Value: value})
			require.NoError(t, err)
			assert.Equal(t, value, created.Value)
		}
	})

	t.Run("BrokerOutageDoesNotFailCreate", func(t *testing.T) {
		producer := &fakeProducer{err: errors.New("broker unavailable")}
		service := newTestService(producer)

		created, err := service.CreateMark(ctx, &mark.Mark{StudentID: 1, SubjectID: 1, TeacherID: 2, Value: 5})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})
}

func TestGetMarkByID(t *testing.T) {
	service := newTestService(nil)
	ctx := context.Background()

	created, err := service.CreateMark(ctx, &mark.Mark{StudentID: 1, SubjectID: 1, TeacherID: 2, Value: 9})
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		got, err := service.GetMarkByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Value)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := service.GetMarkByID(ctx, 999)
		assert.ErrorIs(t, err, mark.ErrMarkNotFound)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, err := service.GetMarkByID(ctx, 0)
		assert.ErrorIs(t, err, mark.ErrInvalidInput)
	})
}

func TestUpdateAndDeleteMark(t *testing.T) {
	service := newTestService(nil)
	ctx := context.Background()

	created, err := service.CreateMark(ctx, &mark.Mark{StudentID: 1, SubjectID: 1, TeacherID: 2, Value: 3})
	require.NoError(t, err)

	t.Run("Update", func(t *testing.T) {
		created.Value = 4
		require.NoError(t, service.UpdateMark(ctx, created))

		got, err := service.GetMarkByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Value)
	})

	t.Run("UpdateInvalidID", func(t *testing.T) {
		assert.ErrorIs(t, service.UpdateMark(ctx, &mark.Mark{ID: 0}), mark.ErrInvalidInput)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, service.DeleteMark(ctx, created.ID))

		_, err := service.GetMarkByID(ctx, created.ID)
		assert.ErrorIs(t, err, mark.ErrMarkNotFound)
	})

	t.Run("DeleteInvalidID", func(t *testing.T) {
		assert.ErrorIs(t, service.DeleteMark(ctx, -1), mark.ErrInvalidInput)
	})
}
