package subject

import "github.com/uptrace/bun"

type Subject struct {
	bun.BaseModel `bun:"table:subjects,alias:sub"`

	ID   int    `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,unique,notnull" json:"name" validate:"required,max=255"`
}
