package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Admin accounts are created by the bootstrap tool only; there is no
// registration endpoint.
type Admin struct {
	bun.BaseModel `bun:"table:admins"`

	ID        string    `bun:"id,pk" json:"id"`
	Email     string    `bun:"email,unique,notnull" json:"email"`
	Password  string    `bun:"password,notnull" json:"-"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}
