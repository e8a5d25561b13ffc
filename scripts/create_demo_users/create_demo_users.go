package main

import (
	"fmt"
	"log"

	"signage-command-center/be/config"
	"signage-command-center/be/database"
	"signage-command-center/be/models"
	"signage-command-center/be/utils"

	"github.com/joho/godotenv"
)

// Seeds the demo accounts used on the login page. Safe to re-run; existing
// accounts are left alone.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	demoUsers := []struct {
		Username string
		Email    string
		Password string
		Role     models.Role
	}{
		{"admin", "admin@example.com", "admin123", models.RoleAdmin},
		{"client1", "client1@example.com", "client123", models.RoleClient},
		{"viewer1", "viewer1@example.com", "viewer123", models.RoleViewer},
	}

	for _, demo := range demoUsers {
		var existing models.User
		if err := db.Where("username = ?", demo.Username).First(&existing).Error; err == nil {
			fmt.Printf("User %s already exists, skipping\n", demo.Username)
			continue
		}

		hash, err := utils.HashPassword(demo.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", demo.Username, err)
		}

		user := models.User{
			Username:     demo.Username,
			Email:        demo.Email,
			PasswordHash: hash,
			Role:         demo.Role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", demo.Username, err)
		}
		fmt.Printf("Created user: %s (%s)\n", demo.Username, demo.Role)
	}

	fmt.Println("Demo users ready: admin, client1, viewer1")
}
