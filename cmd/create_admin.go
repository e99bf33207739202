package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/repository/postgresql"
	"github.com/transcontinental/portal/internal/storage"
)

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a super-admin, or promote an existing admin",
		Long: `Creates a super-admin account with the given credentials. When an admin
with that email already exists it is promoted to super-admin and its
password is left unchanged. Flags default to ADMIN_NAME, ADMIN_EMAIL and
ADMIN_PASSWORD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, database, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer database.Close()
			defer func() { _ = log.Sync() }()

			if name == "" {
				name = cfg.AdminName
			}
			if email == "" {
				email = cfg.AdminEmail
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
			}

			stg := storage.NewStorage(database,
				postgresql.NewShipmentRepo(database),
				postgresql.NewClientRepo(database),
				postgresql.NewAdminRepo(database),
				postgresql.NewOutboxTaskRepo(),
				storage.WithEventTopic(cfg.KafkaTopic),
				storage.WithLogger(log.Named("storage")),
			)

			admin, created, err := stg.EnsureSuperAdmin(ctx, name, email, password)
			if err != nil {
				return err
			}
			log.Info("super-admin ready", zap.String("email", admin.Email), zap.Bool("created", created))
			if created {
				fmt.Printf("Created super-admin %s\n", admin.Email)
			} else {
				fmt.Printf("%s is a super-admin\n", admin.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 6 characters)")
	return cmd
}
