package main

import (
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"crg-site/internal/auth"
	auth_db "crg-site/internal/auth/db"
	"crg-site/internal/config"
	"crg-site/internal/models"
)

// crg-admin creates the admin account. There is no registration endpoint;
// this tool is the only way an admin row comes into existence.
func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Admin", "admin display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}
	cfg := config.Load()

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to open PostgreSQL: %v", err)
	}
	defer sqldb.Close()

	if err := sqldb.Ping(); err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	adminDB := &auth_db.DB{Bun: bunDB}
	admin := models.Admin{
		ID:        uuid.New().String(),
		Email:     *email,
		Password:  hash,
		Name:      *name,
		CreatedAt: time.Now(),
	}

	if err := adminDB.CreateAdmin(admin); err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	log.Printf("admin %s created", admin.Email)
}
