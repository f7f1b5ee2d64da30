package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
)

var adoptionCmd = &cobra.Command{
	Use:   "adoption",
	Short: "Inspect adoption records",
}

var adoptionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List adoptions with pet and adopter names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			records, err := svc.ListAdoptions(ctx)
			if err != nil {
				return err
			}
			printAdoptions(cmd.OutOrStdout(), records)
			return nil
		})
	},
}

func init() {
	adoptionCmd.AddCommand(adoptionListCmd)
}
