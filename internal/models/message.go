package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Message rows are append-only: the contact form creates them and the admin
// panel reads them. There is no update or delete path.
type Message struct {
	bun.BaseModel `bun:"table:messages"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Message   string    `bun:"message,notnull" json:"message"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}
