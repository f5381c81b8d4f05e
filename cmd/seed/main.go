// seed inserts a demo user and a handful of catalog products into the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "password123"

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, databaseURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user, err := users.Create(ctx, &domain.User{
		Name:         "Demo User",
		Email:        "demo@wall-masters.com",
		PasswordHash: string(hash),
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		fmt.Println("demo user already seeded")
	case err != nil:
		log.Fatalf("seed user: %v", err)
	default:
		fmt.Printf("seeded user %s (%s / %s)\n", user.ID, user.Email, demoPassword)
	}

	for i := 1; i <= 5; i++ {
		doc := fmt.Sprintf(
			`{"productId": "P%d", "name": "Wall Poster %d", "price": %d, "images": ["https://cdn.wall-masters.com/p%d.jpg"]}`,
			i, i, 100*i, i,
		)
		if _, err := pool.Exec(ctx, `INSERT INTO products (data) VALUES ($1)`, []byte(doc)); err != nil {
			log.Fatalf("seed product %d: %v", i, err)
		}
	}
	fmt.Println("seeded 5 products")
}
