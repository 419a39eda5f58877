package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	infraDB "library-backend/internal/infrastructure/database"
	"library-backend/internal/shared"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var errPasswordMismatch = errors.New("passwords do not match")

func newSeedAdminCmd() *cobra.Command {
	var req model.RegisterRequest

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an administrator, or promote an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword()
			if err != nil {
				return err
			}
			req.Password = password

			return seedAdmin(cmd, req)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "administrator email")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "Library", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "Admin", "last name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func seedAdmin(cmd *cobra.Command, req model.RegisterRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	db := infraDB.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	users := repository.NewPostgresRepository(db.Pool)

	existing, err := users.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := users.UpdateRole(ctx, existing.ID, shared.RoleAdmin); err != nil {
			return err
		}
		cmd.Printf("Promoted %s to admin\n", existing.Email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := model.NewReader(req.Email, req.FirstName, req.LastName, string(hash))
	admin.Role = shared.RoleAdmin
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	cmd.Printf("Created admin %s (%s)\n", admin.Email, admin.ID)
	return nil
}

// promptPassword reads the password twice without echo. Falls back to a
// plain line read when stdin is not a terminal so the command can be scripted.
func promptPassword() (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	first, err := readPassword(fd, "Password: ")
	if err != nil {
		return "", err
	}
	second, err := readPassword(fd, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}

func readPassword(fd int, prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
