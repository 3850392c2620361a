package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"crg-site/internal/models"
	"crg-site/internal/subscribers/db"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.Subscriber)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create subscribers table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func insertSubscriber(t *testing.T, bunDB *bun.DB, email string, active bool, createdAt time.Time) {
	t.Helper()
	subscriber := models.Subscriber{
		ID:        uuid.New().String(),
		Email:     email,
		IsActive:  active,
		CreatedAt: createdAt,
	}
	_, err := bunDB.NewInsert().Model(&subscriber).Exec(context.Background())
	assert.NoError(t, err)
}

func TestListActiveSubscribers(t *testing.T) {
	subscriberDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	now := time.Now()
	insertSubscriber(t, bunDB, "late@example.com", true, now)
	insertSubscriber(t, bunDB, "early@example.com", true, now.Add(-time.Hour))
	insertSubscriber(t, bunDB, "gone@example.com", false, now.Add(-2*time.Hour))

	subscribers, err := subscriberDB.ListActiveSubscribers()
	assert.NoError(t, err)
	assert.Len(t, subscribers, 2)
	// Oldest signup first, inactive rows excluded
	assert.Equal(t, "early@example.com", subscribers[0].Email)
	assert.Equal(t, "late@example.com", subscribers[1].Email)
}

func TestListActiveSubscribersEmpty(t *testing.T) {
	subscriberDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	subscribers, err := subscriberDB.ListActiveSubscribers()
	assert.NoError(t, err)
	assert.Empty(t, subscribers)
}
