// cmd/migrate/main.go
package main

import (
	"os"

	"library-backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Database migrations and admin tooling for the library backend",
		SilenceUsage: true,
	}

	root.AddCommand(
		newUpCmd(),
		newDownCmd(),
		newStatusCmd(),
		newSeedAdminCmd(),
	)

	return root
}
