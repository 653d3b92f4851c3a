package group

import "github.com/uptrace/bun"

type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID   int    `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,unique,notnull" json:"name" validate:"required,max=14"`
}
