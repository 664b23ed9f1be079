// Command createadmin bootstraps an administrator account directly in the
// database. Registration through the API always yields the user role, so
// the first admin has to be created out of band.
package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/clmarcel/pokedex-api/internal/config"
	"github.com/clmarcel/pokedex-api/internal/models"
	"github.com/clmarcel/pokedex-api/internal/store"
)

func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("usage: createadmin -username NAME -email ADDR -password PASS")
	}
	if len(*username) < 3 || len(*username) > 30 {
		log.Fatal("username must be between 3 and 30 characters")
	}
	if !models.ValidEmail(*email) {
		log.Fatal("invalid email address")
	}

	cfg := config.Load()
	ctx := context.Background()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Username: *username,
		Email:    *email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	created, err := store.NewUserStore(db).Insert(ctx, user)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("admin %q created (id %s)", created.Username, created.ID.Hex())
}
