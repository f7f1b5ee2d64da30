package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
	"github.com/ridoystarlord/petadopt/models"
)

var (
	adopterName    string
	adopterEmail   string
	adopterPhone   string
	adopterAddress string
)

var adopterCmd = &cobra.Command{
	Use:   "adopter",
	Short: "Register adopters and list them",
}

var adopterRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a person interested in adopting",
	Long: `Register a person interested in adopting. Each email can be registered
only once.

Examples:
  petadopt adopter register --name Jo --email jo@x.com --phone 555-0100 --address "1 Main St"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := models.AdopterInput{Name: adopterName, Email: adopterEmail, Phone: adopterPhone, Address: adopterAddress}
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			adopter, err := svc.RegisterAdopter(ctx, in)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Adopter %s registered successfully with ID %d!", adopter.Name, adopter.ID)
			return nil
		})
	},
}

var adopterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered adopters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			adopters, err := svc.ListAdopters(ctx)
			if err != nil {
				return err
			}
			printAdopters(cmd.OutOrStdout(), adopters)
			return nil
		})
	},
}

func init() {
	adopterRegisterCmd.Flags().StringVar(&adopterName, "name", "", "Adopter name")
	adopterRegisterCmd.Flags().StringVar(&adopterEmail, "email", "", "Email (must be unique)")
	adopterRegisterCmd.Flags().StringVar(&adopterPhone, "phone", "", "Phone")
	adopterRegisterCmd.Flags().StringVar(&adopterAddress, "address", "", "Address")
	adopterRegisterCmd.MarkFlagRequired("name")
	adopterRegisterCmd.MarkFlagRequired("email")

	adopterCmd.AddCommand(adopterRegisterCmd)
	adopterCmd.AddCommand(adopterListCmd)
}
