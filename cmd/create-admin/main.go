package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/config/db"
	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/linskybing/corpsite-go/internal/repository"
	flag "github.com/spf13/pflag"
)

// generateRandomString creates a random hex string of 2n characters
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

func main() {
	username := flag.StringP("username", "u", "", "login name (default: admin_<random>)")
	password := flag.StringP("password", "p", "", "password (default: random, printed once)")
	email := flag.StringP("email", "e", "", "contact email")
	role := flag.StringP("role", "r", admin.RoleAdmin, "role: admin or recruiter")
	flag.Parse()

	config.LoadConfig()
	db.Init()
	if err := db.DB.AutoMigrate(repository.Models()...); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if !admin.ValidRole(*role) {
		log.Fatalf("invalid role %q: must be %s or %s", *role, admin.RoleAdmin, admin.RoleRecruiter)
	}

	if *username == "" {
		*username = "admin_" + generateRandomString(4)
	}
	if *password == "" {
		*password = generateRandomString(8)
	}

	svc := application.NewAuthService(repository.NewRepositories(db.DB))
	usr, err := svc.CreateUser(admin.CreateUserInput{
		Username: *username,
		Password: *password,
		Email:    *email,
		Role:     *role,
	})
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	fmt.Println("Back-office credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", usr.Username)
	fmt.Printf("Password: %s\n", *password)
	fmt.Printf("Role:     %s\n", usr.Role)
	fmt.Println("======================================")

	os.Exit(0)
}
