package person

import "github.com/uptrace/bun"

// Person types: "S" for students, "P" for teachers (professors).
const (
	TypeStudent = "S"
	TypeTeacher = "P"
)

type Person struct {
	bun.BaseModel `bun:"table:people,alias:p"`

	ID         int     `bun:"id,pk,autoincrement" json:"id"`
	FirstName  string  `bun:"first_name,notnull" json:"first_name" validate:"required,max=20"`
	LastName   string  `bun:"last_name,notnull" json:"last_name" validate:"required,max=20"`
	FatherName *string `bun:"father_name" json:"father_name" validate:"omitempty,max=20"`
	GroupID    *int    `bun:"group_id" json:"group_id"` // nil for teachers
	Type       string  `bun:"type,notnull" json:"type" validate:"required,oneof=S P"`
}

// FullName is the display label used by the analytics reports.
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}
