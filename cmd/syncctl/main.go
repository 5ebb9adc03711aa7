package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/services"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "syncctl",
		Short:   "Operator tools for subscription balances",
		Version: Version,
	}

	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rebuild subscriptions from the accepted payments ledger",
		Long: `Recomputes views_remaining and subscription_type for every user with
accepted payments (or a single user with --user) and clears their
profile view history. Per-user failures are reported, not fatal.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}

	cmd.Flags().StringP("user", "u", "", "Only sync this user id")
	cmd.Flags().Duration("timeout", 5*time.Minute, "Abort the run after this long")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	var userID *uuid.UUID
	if raw, _ := cmd.Flags().GetString("user"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		userID = &id
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if err := database.Connect(cfg); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if sqlDB, err := database.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := services.NewSyncService(database.DB).Run(ctx, userID)
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		slog.Warn("sync finished with errors", "processed", result.Processed, "updated", result.Updated, "failed", len(result.Errors))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
