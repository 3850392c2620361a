package db

import (
	"context"

	"github.com/uptrace/bun"

	"crg-site/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateMessage(message models.Message) error {
	_, err := d.Bun.NewInsert().Model(&message).Exec(context.Background())
	return err
}

// ListMessages returns contact messages newest first.
func (d *DB) ListMessages() ([]models.Message, error) {
	var messages []models.Message
	err := d.Bun.NewSelect().
		Model(&messages).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return messages, nil
}
