package db

import (
	"context"

	"github.com/uptrace/bun"

	"crg-site/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListActiveSubscribers returns subscribers eligible for talk notifications.
// The public subscribe endpoint is disabled; rows only exist from before the
// feature was turned off.
func (d *DB) ListActiveSubscribers() ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := d.Bun.NewSelect().
		Model(&subscribers).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}
