// Command setadmin promotes an existing account to the admin role. Role
// escalation is deliberately not exposed over HTTP; it requires direct
// database access via this tool.
//
// Usage:
//
//	setadmin -email user@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/soundstash/media-catalog/internal/core/domain"
	"github.com/soundstash/media-catalog/internal/infrastructure/config"
	mongodb "github.com/soundstash/media-catalog/internal/infrastructure/db/mongo"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: setadmin -email user@example.com")
		os.Exit(2)
	}

	if err := run(*email); err != nil {
		fmt.Fprintln(os.Stderr, "setadmin:", err)
		os.Exit(1)
	}
	fmt.Printf("%s is now an admin\n", *email)
}

func run(email string) error {
	// Accounts are stored with normalized emails; a raw flag value like
	// " User@X.com " must still reach the account registered as user@x.com.
	email = domain.NormalizeEmail(email)

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Only the Mongo settings matter here; the tool never mints tokens, so
	// it must not demand JWT_SECRET the way the server does.
	var mcfg config.MongoConfig
	if err := envconfig.Process(ctx, &mcfg); err != nil {
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      mcfg.URI,
		Database: mcfg.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).SetRole(ctx, email, domain.RoleAdmin); err != nil {
		if err == domain.ErrUserNotFound {
			return fmt.Errorf("no account with email %q", email)
		}
		return err
	}

	// Note for operators: tokens minted before the promotion still carry the
	// old role until they expire or are revoked.
	return nil
}
