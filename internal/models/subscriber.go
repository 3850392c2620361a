package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Subscriber is dormant: the public subscribe endpoint is disabled, but the
// table is kept because talk notifications fan out to active subscribers.
type Subscriber struct {
	bun.BaseModel `bun:"table:subscribers"`

	ID        string    `bun:"id,pk" json:"id"`
	Email     string    `bun:"email,unique,notnull" json:"email"`
	Name      string    `bun:"name" json:"name"`
	IsActive  bool      `bun:"is_active" json:"isActive"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}
