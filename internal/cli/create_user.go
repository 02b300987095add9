package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/tokens"
	"github.com/mrlokans/bookstore/internal/database/users"
)

// CreateUserCommand creates a user account directly against the database,
// bypassing the HTTP API. Useful for bootstrapping a first account.
type CreateUserCommand struct {
	Name         string
	Email        string
	Password     string
	DatabasePath string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Name, "name", "", "Display name for the new user (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address, must be unique (required)")
	fs.StringVar(&cmd.Password, "password", "", "Plaintext password, hashed before storage (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -name <name> -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account without going through the HTTP API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		return fmt.Errorf("required flags -name, -email and -password must all be provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(
		users.NewRepository(db.DB),
		tokens.NewRepository(db.DB),
		cfg.Auth,
	)

	session, err := service.Register(auth.RegisterInput{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %q (id %d)\n", session.User.Email, session.User.ID)
	fmt.Printf("Bearer token (shown once): %s\n", session.Token)

	return nil
}
