package db

import (
	"context"

	"github.com/uptrace/bun"

	"crg-site/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := d.Bun.NewSelect().
		Model(&admin).
		Where("email = ?", email).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (d *DB) CreateAdmin(admin models.Admin) error {
	_, err := d.Bun.NewInsert().Model(&admin).Exec(context.Background())
	return err
}
