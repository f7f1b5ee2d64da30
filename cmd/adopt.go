package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
	"github.com/ridoystarlord/petadopt/models"
)

var adoptCmd = &cobra.Command{
	Use:   "adopt <pet-id> <adopter-id>",
	Short: "Record that an adopter takes home an available pet",
	Long: `Record an adoption. The pet must exist and still be available and the
adopter must be registered; otherwise nothing is changed.

Examples:
  petadopt adopt 1 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		petID, err := models.ParseID("pet id", args[0])
		if err != nil {
			return err
		}
		adopterID, err := models.ParseID("adopter id", args[1])
		if err != nil {
			return err
		}
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			rec, err := svc.ProcessAdoption(ctx, petID, adopterID)
			if err != nil {
				return err
			}
			printAdopted(cmd.OutOrStdout(), rec)
			return nil
		})
	},
}
