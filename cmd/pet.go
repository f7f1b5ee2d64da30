package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
	"github.com/ridoystarlord/petadopt/models"
)

var (
	petName    string
	petSpecies string
	petBreed   string
	petAge     string
)

var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Add pets and list the ones available",
}

var petAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a newly arrived pet",
	Long: `Register a newly arrived pet. The arrival date is today and the pet starts
out available for adoption.

Examples:
  petadopt pet add --name Rex --species dog --breed Labrador --age 3
  petadopt pet add --name Tweety --species bird`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := models.ParseAge(petAge)
		if err != nil {
			return err
		}
		in := models.PetInput{Name: petName, Species: petSpecies, Breed: petBreed, Age: age}
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			pet, err := svc.AddPet(ctx, in)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Pet %s added successfully with ID %d!", pet.Name, pet.ID)
			return nil
		})
	},
}

var petListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pets that are still available",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			pets, err := svc.ListAvailablePets(ctx)
			if err != nil {
				return err
			}
			printPets(cmd.OutOrStdout(), pets)
			return nil
		})
	},
}

func init() {
	petAddCmd.Flags().StringVar(&petName, "name", "", "Pet name")
	petAddCmd.Flags().StringVar(&petSpecies, "species", "", "Species ("+models.SpeciesChoices()+")")
	petAddCmd.Flags().StringVar(&petBreed, "breed", "", "Breed")
	petAddCmd.Flags().StringVar(&petAge, "age", "", "Age in years")
	petAddCmd.MarkFlagRequired("name")
	petAddCmd.MarkFlagRequired("species")

	petCmd.AddCommand(petAddCmd)
	petCmd.AddCommand(petListCmd)
}
