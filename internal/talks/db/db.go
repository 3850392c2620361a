package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"crg-site/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetTalkByID(id string) (*models.Talk, error) {
	var talk models.Talk
	err := d.Bun.NewSelect().
		Model(&talk).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &talk, nil
}

// ListTalks returns every talk, newest date first (the management view).
func (d *DB) ListTalks() ([]models.Talk, error) {
	var talks []models.Talk
	err := d.Bun.NewSelect().
		Model(&talks).
		Order("date DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return talks, nil
}

// ListUpcomingTalks returns talks at or after now, soonest first.
func (d *DB) ListUpcomingTalks(now time.Time) ([]models.Talk, error) {
	var talks []models.Talk
	err := d.Bun.NewSelect().
		Model(&talks).
		Where("date >= ?", now).
		Order("date ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return talks, nil
}

// ListPastTalks returns talks before now, most recent first (the archive).
func (d *DB) ListPastTalks(now time.Time) ([]models.Talk, error) {
	var talks []models.Talk
	err := d.Bun.NewSelect().
		Model(&talks).
		Where("date < ?", now).
		Order("date DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return talks, nil
}

func (d *DB) CreateTalk(talk models.Talk) error {
	_, err := d.Bun.NewInsert().Model(&talk).Exec(context.Background())
	return err
}

func (d *DB) UpdateTalk(talk models.Talk) error {
	_, err := d.Bun.NewUpdate().
		Model(&talk).
		Column("title", "speaker", "speaker_affiliation", "date", "time", "location",
			"abstract", "zoom_link", "paper_title", "paper_link", "slides_url",
			"video_url", "tags", "semester").
		Where("id = ?", talk.ID).
		Exec(context.Background())
	return err
}

func (d *DB) DeleteTalk(id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Talk)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
