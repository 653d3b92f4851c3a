package mark

import (
	"time"

	"github.com/uptrace/bun"
)

// Mark links a student, the grading teacher and a subject. The value column
// carries no range constraint in the schema; any integer is accepted.
type Mark struct {
	bun.BaseModel `bun:"table:marks,alias:m"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	StudentID int       `bun:"student_id,notnull" json:"student_id" validate:"required,gt=0"`
	SubjectID int       `bun:"subject_id,notnull" json:"subject_id" validate:"required,gt=0"`
	TeacherID int       `bun:"teacher_id,notnull" json:"teacher_id" validate:"required,gt=0"`
	Value     int       `bun:"value,notnull" json:"value"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// CreatedEvent is published after a mark is stored.
type CreatedEvent struct {
	MarkID    int       `json:"mark_id"`
	StudentID int       `json:"student_id"`
	SubjectID int       `json:"subject_id"`
	TeacherID int       `json:"teacher_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
