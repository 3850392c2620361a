package db

import (
	"context"

	"github.com/uptrace/bun"

	"crg-site/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetMemberByID(id string) (*models.Member, error) {
	var member models.Member
	err := d.Bun.NewSelect().
		Model(&member).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers returns members newest first. With activeOnly set, inactive
// members are filtered out (the public people page).
func (d *DB) ListMembers(activeOnly bool) ([]models.Member, error) {
	var members []models.Member
	query := d.Bun.NewSelect().
		Model(&members).
		Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Scan(context.Background()); err != nil {
		return nil, err
	}
	return members, nil
}

func (d *DB) CreateMember(member models.Member) error {
	_, err := d.Bun.NewInsert().Model(&member).Exec(context.Background())
	return err
}

func (d *DB) UpdateMember(member models.Member) error {
	_, err := d.Bun.NewUpdate().
		Model(&member).
		Column("name", "email", "role", "year", "bio", "research_interests",
			"website_url", "github_url", "is_active").
		Where("id = ?", member.ID).
		Exec(context.Background())
	return err
}

func (d *DB) DeleteMember(id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Member)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
