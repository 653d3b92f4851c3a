package user

import "github.com/uptrace/bun"

// Roles: plain accounts may read; only admins may mutate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int    `bun:"id,pk,autoincrement" json:"id"`
	Login        string `bun:"login,unique,notnull" json:"login"`
	PasswordHash string `bun:"password_hash,notnull" json:"-"` // Never expose the hash in JSON
	Role         string `bun:"role,notnull,default:'user'" json:"role"`
	PersonID     *int   `bun:"person_id,unique" json:"person_id"` // at most one account per person
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest is the request body for user creation.
type CreateUserRequest struct {
	Login    string `json:"login" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	PersonID *int   `json:"person_id"`
}

// UpdateUserRequest carries partial updates; nil fields are left untouched.
type UpdateUserRequest struct {
	Login    *string `json:"login" validate:"omitempty,max=50"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
	PersonID *int    `json:"person_id"`
}
