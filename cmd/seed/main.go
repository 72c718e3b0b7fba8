package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-blog-api/config"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "author@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, phone, education, role, avatar_id, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Author", email, "+10000000000", "Self-taught", "Author",
		"uploads/seed-avatar.png", "https://storage.googleapis.com/demo/uploads/seed-avatar.png", hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed author: %v", err)
	}
	fmt.Printf("seeded author: id=%s email=%s password=%s\n", id, email, password)
}
