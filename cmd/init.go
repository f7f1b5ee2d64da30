package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the pets, adopters and adoptions tables",
	Long: `Create every table that does not exist yet. Existing tables and their rows
are left untouched, so running init again is harmless.

Examples:
  petadopt init
  petadopt init --database-url postgres://localhost/pets`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			if err := svc.InitSchema(ctx); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Database initialized successfully!")
			return nil
		})
	},
}
