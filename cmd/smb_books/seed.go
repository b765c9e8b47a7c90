package main

import (
	"log/slog"

	"github.com/SscSPs/smb_books/internal/platform/config"
	"github.com/SscSPs/smb_books/internal/repositories/database/pgsql"
	"github.com/SscSPs/smb_books/internal/seed"
	"github.com/SscSPs/smb_books/pkg/database"
	"github.com/spf13/cobra"
)

func newSeedAccountsCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-accounts",
		Short: "Insert or refresh the shared chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			accounts, err := seed.LoadDefaultChart()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(pool)

			repos := pgsql.NewRepositoryProvider(pool)
			n, err := repos.AccountRepo.UpsertSharedAccounts(ctx, accounts)
			if err != nil {
				return err
			}
			logger.Info("Shared accounts seeded", slog.Int("count", n))
			return nil
		},
	}
}
