package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"postboard/internal/config"
	"postboard/internal/db"
	"postboard/internal/model"
	"postboard/internal/repository"
)

const seedPassword = "password"

var seedUsers = []model.User{
	{Name: "Alice Example", Email: "alice@example.com"},
	{Name: "Bob Example", Email: "bob@example.com"},
	{Name: "Carol Example", Email: "carol@example.com"},
}

var seedPosts = []model.Post{
	{Title: "Hello, world", Body: "First post on the board."},
	{Title: "Second post", Body: "Some more thoughts."},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make([]*model.User, 0, len(seedUsers))
	for i := range seedUsers {
		u := seedUsers[i]
		if existing, err := userRepo.FindByEmail(ctx, u.Email); err == nil {
			log.Printf("User %s already exists, skipping", u.Email)
			users = append(users, existing)
			continue
		}
		u.PasswordHash = string(hash)
		if err := userRepo.Create(ctx, &u); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
		log.Printf("Created user %s", u.Email)
		users = append(users, &u)
	}

	if len(users) == 0 {
		log.Fatal("No users to own seed posts")
	}

	for i := range seedPosts {
		p := seedPosts[i]
		p.UserID = users[i%len(users)].ID
		if err := postRepo.Create(ctx, &p); err != nil {
			log.Fatalf("Failed to create post %q: %v", p.Title, err)
		}
		log.Printf("Created post %q (id=%d)", p.Title, p.ID)

		comment := model.Comment{
			PostID: p.ID,
			UserID: users[(i+1)%len(users)].ID,
			Body:   "Nice one!",
		}
		if err := commentRepo.Create(ctx, &comment); err != nil {
			log.Fatalf("Failed to create comment: %v", err)
		}

		like := model.Like{
			PostID: p.ID,
			UserID: users[(i+2)%len(users)].ID,
		}
		if err := likeRepo.Create(ctx, &like); err != nil {
			log.Printf("Skipping like (may already exist): %v", err)
		}
	}

	log.Println("Seed completed")
}
