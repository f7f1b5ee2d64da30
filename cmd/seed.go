package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
	"github.com/ridoystarlord/petadopt/loader"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Register pets and adopters listed in a YAML file",
	Long: `Register every pet and adopter listed in a YAML file. Each entry is its own
transaction: an entry that fails (for example a duplicate email) is reported
and the remaining entries are still registered.

File format:

  pets:
    - name: Rex
      species: dog
      breed: Labrador
      age: 3
  adopters:
    - name: Jo
      email: jo@x.com
      phone: "555-0100"
      address: 1 Main St

Examples:
  petadopt seed shelter.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := loader.LoadSeedFromYAML(args[0])
		if err != nil {
			return err
		}
		return withService(cmd.Context(), cmd, func(ctx context.Context, svc *agency.Service) error {
			res, err := svc.Seed(ctx, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range res.Pets {
				success(out, "Pet %s added with ID %d", p.Name, p.ID)
			}
			for _, a := range res.Adopters {
				success(out, "Adopter %s registered with ID %d", a.Name, a.ID)
			}
			for _, f := range res.Failures {
				failure(out, "%s #%d (%s): %s", f.Kind, f.Index+1, f.Name, describe(f.Err))
			}
			fmt.Fprintf(out, "📊 %d pets, %d adopters registered, %d failed\n",
				len(res.Pets), len(res.Adopters), len(res.Failures))
			if len(res.Failures) > 0 {
				return fmt.Errorf("%d seed entries failed", len(res.Failures))
			}
			return nil
		})
	},
}
