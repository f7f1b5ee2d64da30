package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
)

var healthTimeout time.Duration

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity",
	Long: `Check if the database is accessible and whether the schema is in place.

Examples:
  petadopt health                    # Check the configured database
  petadopt health --timeout 10s      # Set custom timeout
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
		defer cancel()

		return withService(ctx, cmd, func(ctx context.Context, svc *agency.Service) error {
			out := cmd.OutOrStdout()
			ready, err := svc.SchemaReady(ctx)
			if err != nil {
				return err
			}
			if !ready {
				warning(out, "Database is accessible but the agency tables were not found")
				fmt.Fprintln(out, "   Run 'petadopt init' to create them")
				return nil
			}
			st, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			success(out, "Database is healthy and accessible")
			fmt.Fprintf(out, "📊 %d pets (%d available), %d adopters, %d adoptions\n",
				st.Pets, st.AvailablePets, st.Adopters, st.Adoptions)
			return nil
		})
	},
}

func init() {
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for health check")
}
